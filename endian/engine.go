// Package endian provides byte order utilities for the key frame codec.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface so frame headers can
// be written with the append-style API without extra allocations. Key frames
// default to little-endian; big-endian is available for interoperability.
//
// Note that the bit-packed surrogate key itself has no byte-order choice: its
// layout is defined bit-wise, MSB-first, by the keycodec package.
//
// The engine instances are immutable and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations. It is
// satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

package keyframe

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/mdkey/compress"
	"github.com/arloliu/mdkey/endian"
	"github.com/arloliu/mdkey/errs"
	"github.com/arloliu/mdkey/format"
	"github.com/arloliu/mdkey/internal/pool"
	"github.com/arloliu/mdkey/rowkey"
)

const (
	// MagicNumber identifies a key frame.
	MagicNumber uint16 = 0x4B46

	// Version is the frame layout version this package writes.
	Version uint8 = 1

	// HeaderSize is the fixed byte length of the frame header.
	HeaderSize = 12
)

// Option configures an Encoder or a Decoder.
type Option func(*config)

type config struct {
	engine      endian.EndianEngine
	compression format.CompressionType
}

func newConfig(opts []Option) config {
	cfg := config{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionNone,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithCompression selects the payload compression. Defaults to none.
func WithCompression(compression format.CompressionType) Option {
	return func(cfg *config) {
		cfg.compression = compression
	}
}

// WithLittleEndian selects little-endian header integers, the default.
func WithLittleEndian() Option {
	return func(cfg *config) {
		cfg.engine = endian.GetLittleEndianEngine()
	}
}

// WithBigEndian selects big-endian header integers, for interoperability with
// big-endian consumers.
func WithBigEndian() Option {
	return func(cfg *config) {
		cfg.engine = endian.GetBigEndianEngine()
	}
}

// Encoder accumulates row keys and finalizes them into one frame.
//
// An encoder is single-use: Write keys, then call Finish exactly once to
// obtain the frame and return the internal buffer to the pool. It is not safe
// for concurrent use.
type Encoder struct {
	engine      endian.EndianEngine
	compression format.CompressionType
	codec       compress.Codec
	buf         *pool.ByteBuffer
	count       int
}

// NewEncoder creates a frame encoder. It fails if the selected compression
// type has no registered codec.
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg := newConfig(opts)

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		engine:      cfg.engine,
		compression: cfg.compression,
		codec:       codec,
		buf:         pool.GetFrameBuffer(),
	}, nil
}

// Write appends one row key to the frame payload. The key's bytes are copied;
// the caller keeps ownership of the key.
func (e *Encoder) Write(key rowkey.Key) {
	e.buf.B = binary.AppendUvarint(e.buf.B, uint64(len(key.Surrogate)))
	e.buf.B = append(e.buf.B, key.Surrogate...)
	e.buf.B = binary.AppendUvarint(e.buf.B, uint64(len(key.Raw)))
	for _, v := range key.Raw {
		e.buf.B = binary.AppendUvarint(e.buf.B, uint64(len(v)))
		e.buf.B = append(e.buf.B, v...)
	}
	e.count++
}

// WriteBatch appends every key in the batch.
func (e *Encoder) WriteBatch(keys []rowkey.Key) {
	for _, key := range keys {
		e.Write(key)
	}
}

// Len returns the number of keys written so far.
func (e *Encoder) Len() int {
	return e.count
}

// Finish compresses the payload, prepends the header, and returns the frame.
//
// The encoder is no longer usable afterwards; its internal buffer is returned
// to the pool. Create a new encoder for the next frame.
func (e *Encoder) Finish() ([]byte, error) {
	payload := e.buf.Bytes()
	uncompressedLen := len(payload)

	compressed, err := e.codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, HeaderSize+len(compressed))
	frame = e.engine.AppendUint16(frame, MagicNumber)
	frame = append(frame, Version, byte(e.compression))
	frame = e.engine.AppendUint32(frame, uint32(e.count))         //nolint: gosec
	frame = e.engine.AppendUint32(frame, uint32(uncompressedLen)) //nolint: gosec
	frame = append(frame, compressed...)

	pool.PutFrameBuffer(e.buf)
	e.buf = nil

	return frame, nil
}

// Decode parses one frame back into row keys. The returned keys own freshly
// allocated byte slices and share no memory with the input.
//
// Errors: ErrInvalidFrameSize for inputs shorter than the header,
// ErrInvalidMagicNumber and ErrUnsupportedFrameVersion for foreign or newer
// frames, and ErrFrameCorrupted when the payload does not parse back into the
// declared key count.
func Decode(data []byte, opts ...Option) ([]rowkey.Key, error) {
	cfg := newConfig(opts)

	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: got %d bytes, header needs %d", errs.ErrInvalidFrameSize, len(data), HeaderSize)
	}
	if cfg.engine.Uint16(data[0:2]) != MagicNumber {
		return nil, errs.ErrInvalidMagicNumber
	}
	if data[2] != Version {
		return nil, fmt.Errorf("%w: version %d", errs.ErrUnsupportedFrameVersion, data[2])
	}

	compression := format.CompressionType(data[3])
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	count := int(cfg.engine.Uint32(data[4:8]))
	uncompressedLen := int(cfg.engine.Uint32(data[8:12]))

	payload, err := codec.Decompress(data[HeaderSize:])
	if err != nil {
		return nil, err
	}
	if len(payload) != uncompressedLen {
		return nil, fmt.Errorf("%w: payload size %d, header declares %d",
			errs.ErrFrameCorrupted, len(payload), uncompressedLen)
	}

	// Each key needs at least two one-byte length prefixes.
	if count > len(payload) {
		return nil, fmt.Errorf("%w: key count %d exceeds payload size %d", errs.ErrFrameCorrupted, count, len(payload))
	}

	keys := make([]rowkey.Key, 0, count)
	pos := 0
	for i := 0; i < count; i++ {
		key, next, err := readKey(payload, pos)
		if err != nil {
			return nil, fmt.Errorf("%w: key %d: %v", errs.ErrFrameCorrupted, i, err)
		}
		keys = append(keys, key)
		pos = next
	}
	if pos != len(payload) {
		return nil, fmt.Errorf("%w: %d trailing payload bytes", errs.ErrFrameCorrupted, len(payload)-pos)
	}

	return keys, nil
}

func readKey(payload []byte, pos int) (rowkey.Key, int, error) {
	surrogate, pos, err := readValue(payload, pos)
	if err != nil {
		return rowkey.Key{}, 0, err
	}

	rawCount, n := binary.Uvarint(payload[pos:])
	if n <= 0 {
		return rowkey.Key{}, 0, fmt.Errorf("invalid raw value count")
	}
	pos += n
	// Each raw value needs at least its one-byte length prefix.
	if rawCount > uint64(len(payload)-pos) {
		return rowkey.Key{}, 0, fmt.Errorf("raw value count %d exceeds remaining payload", rawCount)
	}

	key := rowkey.Key{Surrogate: surrogate}
	if rawCount > 0 {
		key.Raw = make([][]byte, 0, rawCount)
		for j := uint64(0); j < rawCount; j++ {
			var value []byte
			value, pos, err = readValue(payload, pos)
			if err != nil {
				return rowkey.Key{}, 0, err
			}
			key.Raw = append(key.Raw, value)
		}
	}

	return key, pos, nil
}

func readValue(payload []byte, pos int) ([]byte, int, error) {
	length, n := binary.Uvarint(payload[pos:])
	if n <= 0 {
		return nil, 0, fmt.Errorf("invalid length prefix")
	}
	pos += n
	if length > uint64(len(payload)-pos) {
		return nil, 0, fmt.Errorf("value length %d exceeds remaining payload", length)
	}

	value := make([]byte, length)
	copy(value, payload[pos:pos+int(length)])

	return value, pos + int(length), nil
}

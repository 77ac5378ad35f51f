// Package keyframe serializes batches of reconciled row keys into compact,
// optionally compressed frames.
//
// Raw result collectors exist so that rows keep their compact byte form all
// the way through the pipeline; a key frame is the in-memory hand-off format
// for such a batch when it has to cross a stage boundary, spill, or travel to
// a merging coordinator. It introduces no transport of its own: a frame is
// just bytes handed to whatever channel the engine already has.
//
// # Frame Layout
//
//	Offset  Size  Field
//	0       2     Magic number (0x4B46)
//	2       1     Frame version (currently 1)
//	3       1     Compression type (format.CompressionType)
//	4       4     Row key count
//	8       4     Uncompressed payload size in bytes
//	12      ...   Payload, compressed per the header
//
// The payload is, per key: a uvarint surrogate key length and its bytes,
// followed by a uvarint raw value count and one uvarint-length-prefixed byte
// value per raw dimension. Keys reconciled to the same schema share one fixed
// surrogate length, which makes the payload highly compressible.
//
// Header integers use the encoder's endian engine, little-endian by default.
package keyframe

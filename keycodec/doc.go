// Package keycodec implements the fixed-length bit-packed key codec for
// surrogate dimension values.
//
// A Codec is derived from the ordered surrogate dimensions of one schema
// snapshot. Each dimension is assigned a bit-width from its cardinality:
// max(1, ceil(log2(cardinality))) for bounded dimensions, 32 bits for
// unbounded ones. Consecutive dimensions sharing a partition group are packed
// contiguously at bit granularity, most-significant-bit first, with no
// inter-field padding; each partition is rounded up to whole bytes by
// zero-padding the low bits of its final byte, and partitions are concatenated
// in schema order. With every dimension in its own partition group the layout
// degenerates to one byte-aligned sub-key per dimension.
//
// Because fields are fixed-width, packed MSB-first, and never reordered,
// lexicographic byte comparison of two encoded keys is equivalent to comparing
// the decoded value tuples in dimension order. Downstream sort and group-by
// operators rely on this property.
//
// A Codec is immutable after construction and safe for concurrent use. Cache
// shares codecs between scan tasks whose block schemas have identical key
// layouts.
package keycodec

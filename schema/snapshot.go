package schema

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Dimension describes one dimension column of a snapshot.
//
// Ordinal is the dimension's position in the snapshot. PartitionGroup assigns
// surrogate dimensions to byte-aligned sub-keys: consecutive dimensions
// sharing a group id are bit-packed into one partition. The common case is a
// distinct group per dimension, which degenerates to one byte-aligned sub-key
// each. PartitionGroup and Cardinality are only meaningful for KindSurrogate.
type Dimension struct {
	Name           string
	Ordinal        int
	Kind           EncodingKind
	Type           DataType
	Cardinality    Cardinality
	PartitionGroup int
}

// Snapshot is an immutable, ordered sequence of dimension descriptors: either
// the physical schema of one block or the latest schema of the running query.
type Snapshot struct {
	dims []Dimension
}

// NewSnapshot builds a snapshot from dimension descriptors in schema order.
// Ordinals are assigned from the slice positions; the input slice is copied.
func NewSnapshot(dims ...Dimension) *Snapshot {
	owned := make([]Dimension, len(dims))
	copy(owned, dims)
	for i := range owned {
		owned[i].Ordinal = i
	}

	return &Snapshot{dims: owned}
}

// Len returns the total number of dimensions.
func (s *Snapshot) Len() int {
	return len(s.dims)
}

// Dimension returns the descriptor at position i.
func (s *Snapshot) Dimension(i int) Dimension {
	return s.dims[i]
}

// Dimensions returns all descriptors in schema order. The returned slice is a
// copy and may be modified by the caller.
func (s *Snapshot) Dimensions() []Dimension {
	out := make([]Dimension, len(s.dims))
	copy(out, s.dims)

	return out
}

// Surrogates returns the KindSurrogate descriptors in schema order.
func (s *Snapshot) Surrogates() []Dimension {
	var out []Dimension
	for _, d := range s.dims {
		if d.Kind == KindSurrogate {
			out = append(out, d)
		}
	}

	return out
}

// SurrogateCount returns the number of KindSurrogate dimensions.
func (s *Snapshot) SurrogateCount() int {
	n := 0
	for _, d := range s.dims {
		if d.Kind == KindSurrogate {
			n++
		}
	}

	return n
}

// RawCount returns the number of KindRaw dimensions.
func (s *Snapshot) RawCount() int {
	n := 0
	for _, d := range s.dims {
		if d.Kind == KindRaw {
			n++
		}
	}

	return n
}

// Fingerprint returns a 64-bit xxHash64 digest of the surrogate key layout:
// kind, cardinality, and partition group of every dimension, in schema order.
// Two snapshots with equal fingerprints produce structurally identical key
// codecs, so the fingerprint is usable as a codec cache key for scan tasks
// targeting blocks with the same physical schema.
//
// Names and logical types are deliberately excluded: they do not affect the
// packed byte layout.
func (s *Snapshot) Fingerprint() uint64 {
	digest := xxhash.New()

	var buf [10]byte
	for _, d := range s.dims {
		buf[0] = byte(d.Kind)
		card := uint32(0)
		unbounded := byte(0)
		if d.Cardinality.IsUnbounded() {
			unbounded = 1
		} else {
			card = d.Cardinality.Count()
		}
		buf[1] = unbounded
		binary.LittleEndian.PutUint32(buf[2:6], card)
		binary.LittleEndian.PutUint32(buf[6:10], uint32(int32(d.PartitionGroup))) //nolint: gosec
		_, _ = digest.Write(buf[:])
	}

	return digest.Sum64()
}

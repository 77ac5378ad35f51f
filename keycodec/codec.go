package keycodec

import (
	"fmt"

	"github.com/arloliu/mdkey/errs"
	"github.com/arloliu/mdkey/schema"
)

// Field declares one surrogate dimension of a codec: its cardinality and the
// partition group it packs into.
type Field struct {
	Cardinality    schema.Cardinality
	PartitionGroup int
}

// partition is one byte-aligned sub-key: a run of consecutive fields sharing
// a partition group, packed contiguously MSB-first.
type partition struct {
	byteLen int   // packed bit length rounded up to whole bytes
	widths  []int // bit-width per field, in schema order
}

// Codec packs an ordered array of surrogate values into a fixed-length byte
// key and back. It is pure and immutable: every key it produces has the same
// byte length regardless of values.
type Codec struct {
	partitions []partition
	widths     []int    // flattened per-dimension widths, in schema order
	maxima     []uint64 // exclusive upper bound per dimension
	keyLen     int
}

// New builds a codec from the ordered surrogate fields of one schema.
//
// Consecutive fields with equal PartitionGroup form one partition. Returns a
// configuration error if any bounded cardinality is not positive.
func New(fields []Field) (*Codec, error) {
	c := &Codec{widths: make([]int, 0, len(fields))}

	for i, f := range fields {
		if !f.Cardinality.Valid() {
			return nil, fmt.Errorf("%w: dimension %d cardinality %s",
				errs.ErrInvalidCardinality, i, f.Cardinality)
		}

		width := f.Cardinality.BitWidth()
		c.widths = append(c.widths, width)
		if f.Cardinality.IsUnbounded() {
			c.maxima = append(c.maxima, 1<<schema.UnboundedBitWidth)
		} else {
			c.maxima = append(c.maxima, uint64(f.Cardinality.Count()))
		}

		if i == 0 || f.PartitionGroup != fields[i-1].PartitionGroup {
			c.partitions = append(c.partitions, partition{})
		}
		p := &c.partitions[len(c.partitions)-1]
		p.widths = append(p.widths, width)
	}

	for i := range c.partitions {
		bits := 0
		for _, w := range c.partitions[i].widths {
			bits += w
		}
		c.partitions[i].byteLen = (bits + 7) / 8
		c.keyLen += c.partitions[i].byteLen
	}

	return c, nil
}

// NewFromLists builds a codec from parallel cardinality and partition-group
// lists, the shape segment metadata arrives in. Returns a configuration error
// if the lists have mismatched lengths.
func NewFromLists(cardinalities []schema.Cardinality, partitionGroups []int) (*Codec, error) {
	if len(cardinalities) != len(partitionGroups) {
		return nil, fmt.Errorf("%w: %d cardinalities, %d partition groups",
			errs.ErrCardinalityPartitionMismatch, len(cardinalities), len(partitionGroups))
	}

	fields := make([]Field, len(cardinalities))
	for i := range cardinalities {
		fields[i] = Field{Cardinality: cardinalities[i], PartitionGroup: partitionGroups[i]}
	}

	return New(fields)
}

// FromSnapshot builds a codec from the KindSurrogate dimensions of a snapshot,
// in schema order. A snapshot without surrogate dimensions yields a codec with
// zero key length.
func FromSnapshot(s *schema.Snapshot) (*Codec, error) {
	if s == nil {
		return nil, errs.ErrNilSnapshot
	}

	surrogates := s.Surrogates()
	fields := make([]Field, len(surrogates))
	for i, d := range surrogates {
		fields[i] = Field{Cardinality: d.Cardinality, PartitionGroup: d.PartitionGroup}
	}

	return New(fields)
}

// KeyLength returns the fixed byte length of every key this codec produces.
func (c *Codec) KeyLength() int {
	return c.keyLen
}

// NumDimensions returns the number of surrogate dimensions the codec packs.
func (c *Codec) NumDimensions() int {
	return len(c.widths)
}

// BitWidths returns the per-dimension field widths in schema order. The
// returned slice is a copy.
func (c *Codec) BitWidths() []int {
	out := make([]int, len(c.widths))
	copy(out, c.widths)

	return out
}

// Encode packs one surrogate value per dimension, in schema order, into a new
// key of the codec's fixed length.
//
// Every value must satisfy 0 <= value < cardinality (or fit 32 bits for an
// unbounded dimension); out-of-range values return an encode error, never a
// truncated key.
func (c *Codec) Encode(values []uint64) ([]byte, error) {
	key := make([]byte, 0, c.keyLen)

	return c.AppendEncoded(key, values)
}

// AppendEncoded packs values as Encode does, appending the key bytes to dst
// and returning the extended slice. It avoids an allocation when dst already
// has capacity.
func (c *Codec) AppendEncoded(dst []byte, values []uint64) ([]byte, error) {
	if len(values) != len(c.widths) {
		return nil, fmt.Errorf("%w: got %d values, codec packs %d dimensions",
			errs.ErrValueCountMismatch, len(values), len(c.widths))
	}

	vi := 0
	for _, p := range c.partitions {
		var acc uint64
		accBits := 0
		for _, width := range p.widths {
			v := values[vi]
			if v >= c.maxima[vi] {
				return nil, fmt.Errorf("%w: dimension %d value %d, bound %d",
					errs.ErrSurrogateOutOfRange, vi, v, c.maxima[vi])
			}
			vi++

			acc = acc<<uint(width) | v
			accBits += width
			for accBits >= 8 {
				accBits -= 8
				dst = append(dst, byte(acc>>uint(accBits)))
			}
		}
		// Zero-pad the low bits of the partition's final byte.
		if accBits > 0 {
			dst = append(dst, byte(acc<<uint(8-accBits)))
		}
	}

	return dst, nil
}

// Decode unpacks a key of the codec's fixed length into one surrogate value
// per dimension, in schema order. Returns a decode error if the input length
// differs from KeyLength.
func (c *Codec) Decode(key []byte) ([]uint64, error) {
	values := make([]uint64, len(c.widths))
	if err := c.DecodeInto(values, key); err != nil {
		return nil, err
	}

	return values, nil
}

// DecodeInto unpacks key into values, which must have length NumDimensions.
// It is the allocation-free variant of Decode for per-row hot paths.
func (c *Codec) DecodeInto(values []uint64, key []byte) error {
	if len(key) != c.keyLen {
		return fmt.Errorf("%w: got %d bytes, codec key length is %d",
			errs.ErrInvalidKeyLength, len(key), c.keyLen)
	}
	if len(values) != len(c.widths) {
		return fmt.Errorf("%w: got %d value slots, codec packs %d dimensions",
			errs.ErrValueCountMismatch, len(values), len(c.widths))
	}

	vi := 0
	offset := 0
	for _, p := range c.partitions {
		var acc uint64
		accBits := 0
		pos := offset
		for _, width := range p.widths {
			for accBits < width {
				acc = acc<<8 | uint64(key[pos])
				pos++
				accBits += 8
			}
			accBits -= width
			values[vi] = acc >> uint(accBits)
			acc &= (1 << uint(accBits)) - 1
			vi++
		}
		offset += p.byteLen
	}

	return nil
}

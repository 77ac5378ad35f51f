package schema

import (
	"math/bits"
	"strconv"
)

// UnboundedBitWidth is the field width assigned to dimensions whose surrogate
// id space is not bounded by an observed dictionary. Direct encoding schemes
// produce at most 32-bit surrogates.
const UnboundedBitWidth = 32

// Cardinality is the count of distinct surrogate values a dimension can take,
// or Unbounded when the count is unknown at plan time.
//
// The zero value is invalid; construct with Known or Unbounded.
type Cardinality struct {
	n         uint32
	unbounded bool
}

// Known returns a cardinality bounded by n distinct values.
func Known(n uint32) Cardinality {
	return Cardinality{n: n}
}

// Unbounded returns the cardinality of a directly encoded dimension whose id
// space is not bounded by an observed dictionary.
func Unbounded() Cardinality {
	return Cardinality{unbounded: true}
}

// IsUnbounded reports whether the cardinality is the unbounded tag.
func (c Cardinality) IsUnbounded() bool {
	return c.unbounded
}

// Count returns the bounded value count. It returns 0 for Unbounded.
func (c Cardinality) Count() uint32 {
	if c.unbounded {
		return 0
	}

	return c.n
}

// Valid reports whether the cardinality can back a codec field: either
// unbounded, or a bounded count of at least 1.
func (c Cardinality) Valid() bool {
	return c.unbounded || c.n > 0
}

// BitWidth returns the number of bits required to represent any surrogate in
// [0, count). A bounded cardinality yields max(1, ceil(log2(count))); the
// unbounded tag yields UnboundedBitWidth. Cardinality 1 still occupies one bit
// so the field exists in the packed key.
func (c Cardinality) BitWidth() int {
	if c.unbounded {
		return UnboundedBitWidth
	}
	if c.n <= 1 {
		return 1
	}

	return bits.Len32(c.n - 1)
}

func (c Cardinality) String() string {
	if c.unbounded {
		return "Unbounded"
	}

	return "Known(" + strconv.FormatUint(uint64(c.n), 10) + ")"
}

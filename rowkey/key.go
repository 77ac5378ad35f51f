// Package rowkey defines the compact per-row key carried through the scan
// pipeline: one fixed-length bit-packed surrogate key plus one variable-length
// byte value per raw dimension, both in schema order.
//
// A Key is owned by its row for the row's lifetime in the pipeline. The scan
// reconciler mutates it in place to the latest schema shape before handing the
// row downstream, so grouping and sorting operators only ever compare keys
// encoded per the same schema.
package rowkey

import "bytes"

// Key is the compact row key of one scanned row.
type Key struct {
	// Surrogate is the fixed-length key produced by bit-packing all surrogate
	// dimensions in schema order. Its length always equals the governing
	// codec's key length.
	Surrogate []byte

	// Raw holds one byte value per raw dimension, in schema order.
	Raw [][]byte
}

// Compare orders two keys: byte-wise lexicographic comparison of the
// surrogate keys first, then of each raw value in schema order, then by raw
// value count. For keys governed by the same codec, surrogate comparison is
// equivalent to comparing the decoded dimension tuples because fields are
// fixed-width and packed MSB-first.
func Compare(a, b Key) int {
	if c := bytes.Compare(a.Surrogate, b.Surrogate); c != 0 {
		return c
	}

	n := min(len(a.Raw), len(b.Raw))
	for i := 0; i < n; i++ {
		if c := bytes.Compare(a.Raw[i], b.Raw[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(a.Raw) < len(b.Raw):
		return -1
	case len(a.Raw) > len(b.Raw):
		return 1
	default:
		return 0
	}
}

// Equal reports whether two keys are byte-for-byte identical.
func (k Key) Equal(other Key) bool {
	return Compare(k, other) == 0
}

// Clone returns a deep copy sharing no bytes with the original.
func (k Key) Clone() Key {
	out := Key{}
	if k.Surrogate != nil {
		out.Surrogate = bytes.Clone(k.Surrogate)
	}
	if k.Raw != nil {
		out.Raw = make([][]byte, len(k.Raw))
		for i, v := range k.Raw {
			out.Raw[i] = bytes.Clone(v)
		}
	}

	return out
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCardinality_BitWidth(t *testing.T) {
	tests := []struct {
		name     string
		card     Cardinality
		expected int
	}{
		{"cardinality 1 still occupies one bit", Known(1), 1},
		{"cardinality 2", Known(2), 1},
		{"cardinality 3", Known(3), 2},
		{"cardinality 4", Known(4), 2},
		{"cardinality 5", Known(5), 3},
		{"cardinality 8", Known(8), 3},
		{"cardinality 9", Known(9), 4},
		{"cardinality 256", Known(256), 8},
		{"cardinality 257", Known(257), 9},
		{"max uint32", Known(1 << 31), 31},
		{"unbounded is exactly 32 bits", Unbounded(), 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.card.BitWidth())
		})
	}
}

func TestCardinality_Valid(t *testing.T) {
	require.False(t, Known(0).Valid())
	require.False(t, Cardinality{}.Valid(), "zero value is invalid")
	require.True(t, Known(1).Valid())
	require.True(t, Unbounded().Valid())
}

func TestCardinality_Accessors(t *testing.T) {
	require.Equal(t, uint32(42), Known(42).Count())
	require.False(t, Known(42).IsUnbounded())
	require.Equal(t, uint32(0), Unbounded().Count())
	require.True(t, Unbounded().IsUnbounded())
	require.Equal(t, "Known(42)", Known(42).String())
	require.Equal(t, "Unbounded", Unbounded().String())
}

func TestDataType_IsText(t *testing.T) {
	require.True(t, TypeString.IsText())
	require.True(t, TypeVarchar.IsText())
	require.False(t, TypeInt.IsText())
	require.False(t, TypeTimestamp.IsText())
	require.False(t, TypeBinary.IsText())
}

func testSnapshot() *Snapshot {
	return NewSnapshot(
		Dimension{Name: "region", Kind: KindSurrogate, Type: TypeString, Cardinality: Known(16), PartitionGroup: 0},
		Dimension{Name: "payload", Kind: KindRaw, Type: TypeString},
		Dimension{Name: "device", Kind: KindSurrogate, Type: TypeString, Cardinality: Known(100), PartitionGroup: 1},
		Dimension{Name: "rowid", Kind: KindImplicit, Type: TypeLong},
	)
}

func TestSnapshot_Accessors(t *testing.T) {
	s := testSnapshot()

	require.Equal(t, 4, s.Len())
	require.Equal(t, 2, s.SurrogateCount())
	require.Equal(t, 1, s.RawCount())

	surrogates := s.Surrogates()
	require.Len(t, surrogates, 2)
	require.Equal(t, "region", surrogates[0].Name)
	require.Equal(t, "device", surrogates[1].Name)

	// Ordinals are assigned from slice positions.
	require.Equal(t, 0, s.Dimension(0).Ordinal)
	require.Equal(t, 2, surrogates[1].Ordinal)
}

func TestSnapshot_DimensionsIsCopy(t *testing.T) {
	s := testSnapshot()
	dims := s.Dimensions()
	dims[0].Name = "mutated"

	require.Equal(t, "region", s.Dimension(0).Name)
}

func TestSnapshot_Fingerprint(t *testing.T) {
	a := testSnapshot()
	b := testSnapshot()
	require.Equal(t, a.Fingerprint(), b.Fingerprint(), "identical layouts share a fingerprint")

	// Names do not affect the packed layout.
	renamed := NewSnapshot(
		Dimension{Name: "zone", Kind: KindSurrogate, Type: TypeString, Cardinality: Known(16), PartitionGroup: 0},
		Dimension{Name: "body", Kind: KindRaw, Type: TypeString},
		Dimension{Name: "sensor", Kind: KindSurrogate, Type: TypeString, Cardinality: Known(100), PartitionGroup: 1},
		Dimension{Name: "id", Kind: KindImplicit, Type: TypeLong},
	)
	require.Equal(t, a.Fingerprint(), renamed.Fingerprint())

	// Cardinality does.
	wider := NewSnapshot(
		Dimension{Name: "region", Kind: KindSurrogate, Type: TypeString, Cardinality: Known(17), PartitionGroup: 0},
		Dimension{Name: "payload", Kind: KindRaw, Type: TypeString},
		Dimension{Name: "device", Kind: KindSurrogate, Type: TypeString, Cardinality: Known(100), PartitionGroup: 1},
		Dimension{Name: "rowid", Kind: KindImplicit, Type: TypeLong},
	)
	require.NotEqual(t, a.Fingerprint(), wider.Fingerprint())

	// So does the unbounded tag.
	unbounded := NewSnapshot(
		Dimension{Name: "region", Kind: KindSurrogate, Type: TypeString, Cardinality: Unbounded(), PartitionGroup: 0},
	)
	bounded := NewSnapshot(
		Dimension{Name: "region", Kind: KindSurrogate, Type: TypeString, Cardinality: Known(1 << 31), PartitionGroup: 0},
	)
	require.NotEqual(t, unbounded.Fingerprint(), bounded.Fingerprint())
}

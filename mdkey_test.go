package mdkey

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mdkey/presence"
	"github.com/arloliu/mdkey/rowkey"
	"github.com/arloliu/mdkey/scan"
	"github.com/arloliu/mdkey/schema"
)

func testSchemas() (block, latest *schema.Snapshot) {
	block = schema.NewSnapshot(
		schema.Dimension{Name: "region", Kind: schema.KindSurrogate, Cardinality: schema.Known(4), PartitionGroup: 0},
		schema.Dimension{Name: "device", Kind: schema.KindSurrogate, Cardinality: schema.Known(8), PartitionGroup: 1},
	)
	latest = schema.NewSnapshot(
		schema.Dimension{Name: "region", Kind: schema.KindSurrogate, Cardinality: schema.Known(4), PartitionGroup: 0},
		schema.Dimension{Name: "tenant", Kind: schema.KindSurrogate, Cardinality: schema.Unbounded(), PartitionGroup: 1},
		schema.Dimension{Name: "device", Kind: schema.KindSurrogate, Cardinality: schema.Known(8), PartitionGroup: 2},
	)

	return block, latest
}

func TestBuildCodec(t *testing.T) {
	block, _ := testSchemas()

	codec, err := BuildCodec(block)
	require.NoError(t, err)
	require.Equal(t, 2, codec.NumDimensions())

	key, err := codec.Encode([]uint64{3, 5})
	require.NoError(t, err)
	values, err := codec.Decode(key)
	require.NoError(t, err)
	require.Equal(t, []uint64{3, 5}, values)
}

func TestNewReconcilingCollector_AllPresent(t *testing.T) {
	block, _ := testSchemas()

	pres, err := presence.FromSnapshots(block, block)
	require.NoError(t, err)
	require.Zero(t, pres.AbsentCount())

	collector, err := NewReconcilingCollector(block, block, pres)
	require.NoError(t, err)
	require.IsType(t, (*scan.RawCollector)(nil), collector,
		"fully up-to-date blocks skip the restructuring wrapper")
}

func TestNewReconcilingCollector_Restructures(t *testing.T) {
	block, latest := testSchemas()

	pres, err := presence.FromSnapshots(block, latest)
	require.NoError(t, err)
	require.Equal(t, 1, pres.AbsentCount())

	collector, err := NewReconcilingCollector(block, latest, pres)
	require.NoError(t, err)
	require.IsType(t, (*scan.RestructureCollector)(nil), collector)

	blockCodec, err := BuildCodec(block)
	require.NoError(t, err)
	key, err := blockCodec.Encode([]uint64{3, 5})
	require.NoError(t, err)

	src := scan.NewSliceSource([]scan.Row{{Key: rowkey.Key{Surrogate: key}}})
	batch, err := collector.Collect(src, 16)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	require.Len(t, batch[0].Key.Surrogate, 6, "added unbounded dimension contributes four bytes")
}

func TestNewReconcilingCollector_PropagatesErrors(t *testing.T) {
	block, latest := testSchemas()

	_, err := NewReconcilingCollector(block, latest, nil)
	require.Error(t, err)
}

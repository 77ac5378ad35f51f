package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0x7F).String())
}

func TestCompressionType_Valid(t *testing.T) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		require.True(t, c.Valid(), c.String())
	}
	require.False(t, CompressionType(0).Valid())
	require.False(t, CompressionType(0x7F).Valid())
}

package keyframe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mdkey/errs"
	"github.com/arloliu/mdkey/format"
	"github.com/arloliu/mdkey/rowkey"
)

func sampleKeys() []rowkey.Key {
	return []rowkey.Key{
		{
			Surrogate: []byte{0xC0, 0x00, 0x00, 0x00, 0x01, 0xA0},
			Raw:       [][]byte{[]byte("us-east"), {0xDE, 0xAD}},
		},
		{
			Surrogate: []byte{0x01, 0x02},
			Raw:       [][]byte{[]byte("@NU#LL$!")},
		},
		{
			Surrogate: []byte{0xFF},
		},
	}
}

func requireSameKeys(t *testing.T, want, got []rowkey.Key) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		require.True(t, want[i].Equal(got[i]), "key %d mismatch", i)
	}
}

func TestFrame_RoundTrip(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, compression := range compressions {
		t.Run(compression.String(), func(t *testing.T) {
			enc, err := NewEncoder(WithCompression(compression))
			require.NoError(t, err)

			keys := sampleKeys()
			enc.WriteBatch(keys)
			require.Equal(t, len(keys), enc.Len())

			frame, err := enc.Finish()
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(frame), HeaderSize)

			decoded, err := Decode(frame)
			require.NoError(t, err)
			requireSameKeys(t, keys, decoded)
		})
	}
}

func TestFrame_BigEndianHeader(t *testing.T) {
	enc, err := NewEncoder(WithBigEndian())
	require.NoError(t, err)

	keys := sampleKeys()
	enc.WriteBatch(keys)
	frame, err := enc.Finish()
	require.NoError(t, err)

	decoded, err := Decode(frame, WithBigEndian())
	require.NoError(t, err)
	requireSameKeys(t, keys, decoded)

	// Reading a big-endian frame as little-endian trips the magic check.
	_, err = Decode(frame)
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
}

func TestFrame_Empty(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	require.Zero(t, enc.Len())

	frame, err := enc.Finish()
	require.NoError(t, err)
	require.Len(t, frame, HeaderSize)

	decoded, err := Decode(frame)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestFrame_DecodedKeysOwnTheirBytes(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	key := rowkey.Key{Surrogate: []byte{0x01, 0x02}, Raw: [][]byte{{0x03}}}
	enc.Write(key)
	frame, err := enc.Finish()
	require.NoError(t, err)

	decoded, err := Decode(frame)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	for i := range frame {
		frame[i] = 0xFF
	}
	require.Equal(t, []byte{0x01, 0x02}, decoded[0].Surrogate)
	require.Equal(t, []byte{0x03}, decoded[0].Raw[0])
}

func TestNewEncoder_UnknownCompression(t *testing.T) {
	_, err := NewEncoder(WithCompression(format.CompressionType(0x7F)))
	require.Error(t, err)
}

func TestDecode_HeaderErrors(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	enc.WriteBatch(sampleKeys())
	frame, err := enc.Finish()
	require.NoError(t, err)

	t.Run("truncated header", func(t *testing.T) {
		_, err := Decode(frame[:HeaderSize-1])
		require.ErrorIs(t, err, errs.ErrInvalidFrameSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte(nil), frame...)
		bad[0] ^= 0xFF
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("unsupported version", func(t *testing.T) {
		bad := append([]byte(nil), frame...)
		bad[2] = Version + 1
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrUnsupportedFrameVersion)
	})

	t.Run("unknown compression", func(t *testing.T) {
		bad := append([]byte(nil), frame...)
		bad[3] = 0x7F
		_, err := Decode(bad)
		require.Error(t, err)
	})
}

func TestDecode_CorruptPayload(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	enc.WriteBatch(sampleKeys())
	frame, err := enc.Finish()
	require.NoError(t, err)

	t.Run("declared size mismatch", func(t *testing.T) {
		bad := append([]byte(nil), frame...)
		bad[8]++ // uncompressed length
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrFrameCorrupted)
	})

	t.Run("key count exceeds payload", func(t *testing.T) {
		bad := append([]byte(nil), frame...)
		bad[6] = 0xFF // key count, little-endian third byte
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrFrameCorrupted)
	})

	t.Run("truncated payload", func(t *testing.T) {
		bad := append([]byte(nil), frame[:len(frame)-1]...)
		bad[8] = frame[8] - 1 // keep the declared length consistent
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrFrameCorrupted)
	})

	t.Run("extra key declared", func(t *testing.T) {
		bad := append([]byte(nil), frame...)
		bad[4]++ // one more key than the payload holds
		_, err := Decode(bad)
		require.ErrorIs(t, err, errs.ErrFrameCorrupted)
	})
}

package section

import (
	"testing"

	"github.com/arloliu/ncs/errs"
	"github.com/stretchr/testify/require"
)

func TestHeader_Parse(t *testing.T) {
	t.Run("stored payload header", func(t *testing.T) {
		data := []byte{
			0x01, 'N', 'C', 'S',
			0x00, 0x00, 0x00, 0x00,
			0x04, 0x00, 0x00, 0x00,
			0x04, 0x00, 0x00, 0x00,
		}

		h, err := ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, uint8(1), h.Version)
		require.False(t, h.IsCompressed())
		require.Equal(t, uint32(4), h.DecompressedSize)
		require.Equal(t, uint32(4), h.CompressedSize)
		require.Equal(t, 20, h.TotalSize())
	})

	t.Run("too short", func(t *testing.T) {
		_, err := ParseHeader([]byte{0x01, 'N', 'C'})

		var short *errs.DataTooShortError
		require.ErrorAs(t, err, &short)
		require.Equal(t, 16, short.Needed)
		require.Equal(t, 3, short.Actual)
	})

	t.Run("wrong magic", func(t *testing.T) {
		data := make([]byte, HeaderSize)
		data[0] = 0x01
		copy(data[1:4], "NCX")

		_, err := ParseHeader(data)

		var magic *errs.InvalidNcsMagicError
		require.ErrorAs(t, err, &magic)
		require.Equal(t, [3]byte{'N', 'C', 'X'}, magic.Got)
	})

	t.Run("wrong version", func(t *testing.T) {
		data := Header{Version: 2}.Bytes()

		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidVersion)
	})
}

func TestHeader_Bytes(t *testing.T) {
	h := Header{Version: Version, CompressionFlag: 3, DecompressedSize: 0x40000, CompressedSize: 0x1234}

	data := h.Bytes()
	require.Len(t, data, HeaderSize)
	require.Equal(t, []byte{0x01, 'N', 'C', 'S', 0x03, 0, 0, 0, 0x00, 0x00, 0x04, 0x00, 0x34, 0x12, 0, 0}, data)

	parsed, err := ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, h, parsed)
	require.True(t, parsed.IsCompressed())
}

package blob

import (
	"testing"

	"github.com/arloliu/ncs/section"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

// container builds an outer header followed by region.
func container(flag uint32, decompressedSize int, region []byte) []byte {
	h := section.Header{
		Version:          section.Version,
		CompressionFlag:  flag,
		DecompressedSize: uint32(decompressedSize), //nolint:gosec
		CompressedSize:   uint32(len(region)),      //nolint:gosec
	}

	return append(h.Bytes(), region...)
}

// singleBlockRegion builds a single-block compressed region around data.
func singleBlockRegion(data []byte) []byte {
	inner := section.InnerHeader{Magic: section.InnerMagic}

	return append(inner.Bytes(), data...)
}

// multiBlockRegion builds a multi-block compressed region from blocks.
func multiBlockRegion(blocks ...[]byte) []byte {
	inner := section.InnerHeader{Magic: section.InnerMagic, FormatFlags: 1}
	for _, b := range blocks {
		inner.BlockSizes = append(inner.BlockSizes, uint32(len(b))) //nolint:gosec
	}

	region := inner.Bytes()
	for _, b := range blocks {
		region = append(region, b...)
	}

	return region
}

func compressLZ4(t *testing.T, data []byte) []byte {
	t.Helper()

	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, buf, nil)
	require.NoError(t, err)
	require.NotZero(t, n, "test data must be compressible")

	return buf[:n]
}

func patterned(size int, seed byte) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = seed + byte(i%23)
	}

	return data
}

// failingDecompressor fails on one block target and copies otherwise.
type failingDecompressor struct {
	failOn []byte
	extra  int
}

func (f *failingDecompressor) DecompressBlock(compressed []byte, expectedSize int) ([]byte, error) {
	if f.failOn != nil && string(compressed) == string(f.failOn) {
		return nil, errBoom
	}

	return make([]byte, expectedSize+f.extra), nil
}

func (f *failingDecompressor) Name() string        { return "failing" }
func (f *failingDecompressor) IsFullSupport() bool { return true }

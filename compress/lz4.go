package compress

import (
	"github.com/arloliu/ncs/errs"
	"github.com/pierrec/lz4/v4"
)

// decodeLZ4 decodes an LZ4 block into a buffer of exactly expectedSize bytes.
// A block that would expand past expectedSize fails like a corrupt block.
func decodeLZ4(src []byte, expectedSize int) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}

	dst := make([]byte, expectedSize)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, errs.NewBackendError("bundled/lz4", "corrupt block or output larger than expected", err)
	}

	return dst[:n], nil
}

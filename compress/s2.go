package compress

import (
	"github.com/arloliu/ncs/errs"
	"github.com/klauspost/compress/s2"
)

// decodeS2 decodes an S2 block. The length prefix is checked before any
// allocation so a hostile header cannot force a large buffer.
func decodeS2(src []byte, expectedSize int) ([]byte, error) {
	n, err := s2.DecodedLen(src)
	if err != nil {
		return nil, errs.NewBackendError("bundled/s2", "corrupt block header", err)
	}
	if n != expectedSize {
		return nil, errs.NewDecompressionSize(expectedSize, n)
	}

	out, err := s2.Decode(make([]byte, expectedSize), src)
	if err != nil {
		return nil, errs.NewBackendError("bundled/s2", "corrupt block", err)
	}

	return out, nil
}

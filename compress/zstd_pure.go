package compress

import (
	"fmt"
	"sync"

	"github.com/arloliu/ncs/errs"
	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools decoders; DecodeAll is stateless so a pooled decoder
// can be reused after a failed call.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

// decodeZstd decodes a Zstandard frame into a buffer with capacity
// expectedSize. The decoder may grow the buffer; checkSize rejects that.
func decodeZstd(src []byte, expectedSize int) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(src, make([]byte, 0, expectedSize))
	if err != nil {
		return nil, errs.NewBackendError("bundled/zstd", "corrupt frame", err)
	}

	return out, nil
}

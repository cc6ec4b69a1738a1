package compress

import (
	"fmt"

	"github.com/arloliu/ncs/errs"
	"github.com/arloliu/ncs/format"
)

// Bundled is the in-process backend. It decodes blocks with an open block
// algorithm chosen at construction and is safe for concurrent use.
//
// The bundled codecs do not decode the vendor LZ format that shipped
// containers carry. They serve re-packed and test payloads; real game
// containers need the native, exec or pipe-exec backend. A failed block that
// looks like a vendor block reports errs.ErrVendorBlock.
type Bundled struct {
	codec  format.BlockCodec
	decode func(src []byte, expectedSize int) ([]byte, error)
}

var _ BlockDecompressor = (*Bundled)(nil)

// NewBundled creates a bundled backend for codec. Zero means LZ4.
func NewBundled(codec format.BlockCodec) (*Bundled, error) {
	switch codec {
	case 0, format.CodecLZ4:
		return lz4Bundled, nil
	case format.CodecS2:
		return &Bundled{codec: codec, decode: decodeS2}, nil
	case format.CodecZstd:
		return &Bundled{codec: codec, decode: decodeZstd}, nil
	case format.CodecNone:
		return &Bundled{codec: codec, decode: decodeStored}, nil
	default:
		return nil, fmt.Errorf("%w: bundled codec %s", errs.ErrUnsupportedBackend, codec)
	}
}

// DecompressBlock implements BlockDecompressor.
func (b *Bundled) DecompressBlock(compressed []byte, expectedSize int) ([]byte, error) {
	if expectedSize < 0 {
		return nil, errs.NewDecompressionSize(0, expectedSize)
	}

	out, err := b.decode(compressed, expectedSize)
	if err != nil {
		if isVendorBlock(compressed) {
			return nil, errs.NewBackendError(b.Name(), "unsupported block format", fmt.Errorf("%w: %w", errs.ErrVendorBlock, err))
		}

		return nil, err
	}

	return checkSize(out, expectedSize)
}

// Name implements BlockDecompressor.
func (b *Bundled) Name() string {
	return "bundled/" + b.codec.String()
}

// IsFullSupport implements BlockDecompressor.
func (b *Bundled) IsFullSupport() bool {
	return false
}

// Codec returns the block algorithm.
func (b *Bundled) Codec() format.BlockCodec {
	return b.codec
}

// isVendorBlock reports whether src starts with a vendor LZ block header: a
// low nibble of 0xC in the first byte, clear reserved bits, and a known
// decoder id in the second byte.
func isVendorBlock(src []byte) bool {
	if len(src) < 2 || src[0]&0x0f != 0x0c || (src[0]>>4)&0x3 != 0 {
		return false
	}

	switch src[1] & 0x7f {
	case 5, 6, 10, 11, 12:
		return true
	default:
		return false
	}
}

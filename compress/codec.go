package compress

import (
	"fmt"

	"github.com/arloliu/ncs/errs"
	"github.com/arloliu/ncs/format"
)

// BlockDecompressor decompresses one block of a multi-block payload, or the
// single block of a single-block payload.
type BlockDecompressor interface {
	// DecompressBlock decompresses compressed into exactly expectedSize bytes.
	//
	// Returns *errs.DecompressionSizeError when the backend produced a
	// different length, and an error matching errs.ErrBackend for any
	// backend-specific failure.
	DecompressBlock(compressed []byte, expectedSize int) ([]byte, error)

	// Name identifies the backend in diagnostics.
	Name() string

	// IsFullSupport reports whether the backend implements the complete
	// vendor format.
	IsFullSupport() bool
}

// Config selects and configures a backend.
type Config struct {
	// Backend selects the implementation. Zero means format.BackendBundled.
	Backend format.BackendType
	// Codec selects the block algorithm of the bundled backend.
	Codec format.BlockCodec
	// Library is the vendor library path for the native backend.
	Library string
	// Helper is the helper executable for the exec and pipe-exec backends.
	Helper string
	// PipeDir is where the pipe-exec backend creates its named pipes.
	// Empty means os.TempDir().
	PipeDir string
}

// New creates the backend described by cfg.
//
// Returns:
//   - BlockDecompressor: the configured backend
//   - error: errs.ErrUnsupportedBackend for backends unavailable on this
//     platform, or a configuration error
func New(cfg Config) (BlockDecompressor, error) {
	switch cfg.Backend {
	case 0, format.BackendBundled:
		bundled, err := NewBundled(cfg.Codec)
		if err != nil {
			return nil, err
		}

		return bundled, nil
	case format.BackendNative:
		if cfg.Library == "" {
			return nil, fmt.Errorf("%w: native backend requires a library path", errs.ErrInvalidConfig)
		}
		native, err := NewNative(cfg.Library)
		if err != nil {
			return nil, err
		}

		return NewLocked(native), nil
	case format.BackendExec:
		if cfg.Helper == "" {
			return nil, fmt.Errorf("%w: exec backend requires a helper path", errs.ErrInvalidConfig)
		}

		return NewExec(cfg.Helper), nil
	case format.BackendPipeExec:
		if cfg.Helper == "" {
			return nil, fmt.Errorf("%w: pipe-exec backend requires a helper path", errs.ErrInvalidConfig)
		}

		pipe, err := NewPipeExec(cfg.Helper, cfg.PipeDir)
		if err != nil {
			return nil, err
		}

		return pipe, nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedBackend, cfg.Backend)
	}
}

// Default returns the bundled LZ4 backend. It cannot decode vendor LZ blocks;
// see Bundled.
func Default() BlockDecompressor {
	return lz4Bundled
}

var lz4Bundled = &Bundled{codec: format.CodecLZ4, decode: decodeLZ4}

// checkSize enforces the exact-length contract shared by every backend.
func checkSize(out []byte, expectedSize int) ([]byte, error) {
	if len(out) != expectedSize {
		return nil, errs.NewDecompressionSize(expectedSize, len(out))
	}

	return out, nil
}

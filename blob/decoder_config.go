package blob

import (
	"fmt"

	"github.com/arloliu/ncs/compress"
	"github.com/arloliu/ncs/errs"
	"github.com/arloliu/ncs/internal/options"
)

// DecoderConfig holds the options of a Decoder.
type DecoderConfig struct {
	decompressor compress.BlockDecompressor
	concurrency  int
}

// NewDecoderConfig returns the default configuration: the bundled backend and
// sequential block decoding.
func NewDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		decompressor: compress.Default(),
		concurrency:  1,
	}
}

// Decompressor returns the configured block decompressor.
func (c *DecoderConfig) Decompressor() compress.BlockDecompressor {
	return c.decompressor
}

// Concurrency returns the number of blocks decoded in parallel.
func (c *DecoderConfig) Concurrency() int {
	return c.concurrency
}

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*DecoderConfig]

// WithDecompressor sets the block decompressor.
func WithDecompressor(d compress.BlockDecompressor) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if d == nil {
			return fmt.Errorf("%w: nil decompressor", errs.ErrInvalidConfig)
		}
		c.decompressor = d

		return nil
	})
}

// WithConcurrency sets how many blocks of a multi-block payload are decoded
// in parallel. 1 decodes sequentially.
func WithConcurrency(n int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: concurrency must be at least 1, got %d", errs.ErrInvalidConfig, n)
		}
		c.concurrency = n

		return nil
	})
}

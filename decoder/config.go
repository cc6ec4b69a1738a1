package decoder

import (
	"fmt"

	"github.com/arloliu/ncs/errs"
	"github.com/arloliu/ncs/format"
	"github.com/arloliu/ncs/internal/options"
)

// DefaultMaxNesting is the default limit on nested record depth.
const DefaultMaxNesting = 64

// Config holds the options of a Decoder.
type Config struct {
	strategy   format.Strategy
	maxNesting int
}

// NewConfig returns the default configuration: automatic strategy selection
// and DefaultMaxNesting.
func NewConfig() *Config {
	return &Config{
		strategy:   format.StrategyAuto,
		maxNesting: DefaultMaxNesting,
	}
}

// Strategy returns the configured strategy.
func (c *Config) Strategy() format.Strategy {
	return c.strategy
}

// MaxNesting returns the nested record depth limit.
func (c *Config) MaxNesting() int {
	return c.maxNesting
}

// Option configures a Decoder.
type Option = options.Option[*Config]

// WithStrategy forces a decode strategy. format.StrategyAuto selects one per
// table from its entry section.
func WithStrategy(s format.Strategy) Option {
	return options.New(func(c *Config) error {
		switch s {
		case format.StrategyAuto, format.StrategySchema, format.StrategyDifferential:
			c.strategy = s
			return nil
		default:
			return fmt.Errorf("%w: unknown strategy %d", errs.ErrInvalidConfig, s)
		}
	})
}

// WithMaxNesting limits how deeply records may nest. A record that nests
// deeper is aborted.
func WithMaxNesting(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("%w: max nesting must be at least 1, got %d", errs.ErrInvalidConfig, n)
		}
		c.maxNesting = n

		return nil
	})
}

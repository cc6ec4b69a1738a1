// Package config loads ncs configuration files.
//
// Configuration is loaded from a single file given by:
//   - the NCS_CONFIG environment variable, or
//   - an explicit path, such as the --config flag of ncsdump
//
// Files ending in .json or .jsonc are read as JSON with comments and
// trailing commas; everything else is read as YAML. Values missing from the
// file keep their Default.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/ncs/blob"
	"github.com/arloliu/ncs/compress"
	"github.com/arloliu/ncs/decoder"
	"github.com/arloliu/ncs/errs"
	"github.com/arloliu/ncs/format"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable Load reads the config path from.
const EnvVar = "NCS_CONFIG"

// Config is the complete ncs configuration.
type Config struct {
	// Backend selects the block decompressor.
	Backend BackendConfig `yaml:"backend" json:"backend"`

	// Decode configures container and record decoding.
	Decode DecodeConfig `yaml:"decode" json:"decode"`
}

// BackendConfig selects and configures the block decompressor.
type BackendConfig struct {
	// Type is one of bundled, native, exec or pipe-exec.
	// Default: bundled
	Type string `yaml:"type" json:"type"`

	// Codec is the block algorithm of the bundled backend: lz4, s2, zstd
	// or none.
	// Default: lz4
	Codec string `yaml:"codec" json:"codec"`

	// Library is the vendor library path. Required by the native backend.
	Library string `yaml:"library" json:"library"`

	// Helper is the helper executable. Required by the exec and pipe-exec
	// backends.
	Helper string `yaml:"helper" json:"helper"`

	// PipeDir is where the pipe-exec backend creates its named pipes.
	// Default: the system temporary directory
	PipeDir string `yaml:"pipe_dir" json:"pipe_dir"`
}

// DecodeConfig configures decoding.
type DecodeConfig struct {
	// Strategy is auto, schema or differential.
	// Default: auto
	Strategy string `yaml:"strategy" json:"strategy"`

	// Concurrency is how many blocks of a multi-block payload are
	// decompressed in parallel.
	// Default: 1
	Concurrency int `yaml:"concurrency" json:"concurrency"`

	// MaxNesting limits nested record depth.
	// Default: 64
	MaxNesting int `yaml:"max_nesting" json:"max_nesting"`
}

// Default returns the default configuration: the bundled LZ4 backend,
// sequential block decoding and automatic strategy selection.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			Type:  format.BackendBundled.String(),
			Codec: format.CodecLZ4.String(),
		},
		Decode: DecodeConfig{
			Strategy:    format.StrategyAuto.String(),
			Concurrency: 1,
			MaxNesting:  decoder.DefaultMaxNesting,
		},
	}
}

// Load loads the configuration file named by NCS_CONFIG.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, fmt.Errorf("%w: %s environment variable not set", errs.ErrInvalidConfig, EnvVar)
	}

	return LoadFile(path)
}

// LoadFile loads and validates the configuration file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for errors. Every problem is reported,
// joined, and each one matches errs.ErrInvalidConfig.
func (c *Config) Validate() error {
	var problems []error
	invalid := func(msg string, args ...any) {
		problems = append(problems, fmt.Errorf("%w: %s", errs.ErrInvalidConfig, fmt.Sprintf(msg, args...)))
	}

	backend, err := format.ParseBackendType(c.Backend.Type)
	if err != nil {
		invalid("backend.type: %v", err)
	}
	if _, err := format.ParseBlockCodec(c.Backend.Codec); err != nil {
		invalid("backend.codec: %v", err)
	}

	switch backend {
	case format.BackendNative:
		if c.Backend.Library == "" {
			invalid("backend.library is required by the native backend")
		}
	case format.BackendExec, format.BackendPipeExec:
		if c.Backend.Helper == "" {
			invalid("backend.helper is required by the %s backend", backend)
		}
	}

	if _, err := format.ParseStrategy(c.Decode.Strategy); err != nil {
		invalid("decode.strategy: %v", err)
	}
	if c.Decode.Concurrency < 1 {
		invalid("decode.concurrency must be at least 1, got %d", c.Decode.Concurrency)
	}
	if c.Decode.MaxNesting < 1 {
		invalid("decode.max_nesting must be at least 1, got %d", c.Decode.MaxNesting)
	}

	return errors.Join(problems...)
}

// CompressConfig converts the backend section into a compress.Config.
func (b BackendConfig) CompressConfig() (compress.Config, error) {
	backend, err := format.ParseBackendType(b.Type)
	if err != nil {
		return compress.Config{}, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}
	codec, err := format.ParseBlockCodec(b.Codec)
	if err != nil {
		return compress.Config{}, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	return compress.Config{
		Backend: backend,
		Codec:   codec,
		Library: b.Library,
		Helper:  b.Helper,
		PipeDir: b.PipeDir,
	}, nil
}

// Decompressor creates the configured block decompressor.
func (c *Config) Decompressor() (compress.BlockDecompressor, error) {
	cc, err := c.Backend.CompressConfig()
	if err != nil {
		return nil, err
	}

	return compress.New(cc)
}

// BlobOptions returns the container decoder options: the configured
// decompressor and block concurrency.
func (c *Config) BlobOptions() ([]blob.DecoderOption, error) {
	d, err := c.Decompressor()
	if err != nil {
		return nil, err
	}

	return []blob.DecoderOption{
		blob.WithDecompressor(d),
		blob.WithConcurrency(c.Decode.Concurrency),
	}, nil
}

// DecoderOptions returns the record decoder options.
func (c *Config) DecoderOptions() ([]decoder.Option, error) {
	strategy, err := format.ParseStrategy(c.Decode.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	return []decoder.Option{
		decoder.WithStrategy(strategy),
		decoder.WithMaxNesting(c.Decode.MaxNesting),
	}, nil
}

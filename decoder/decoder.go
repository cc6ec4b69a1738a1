package decoder

import (
	"context"
	"fmt"
	"slices"

	"github.com/arloliu/ncs/content"
	"github.com/arloliu/ncs/diag"
	"github.com/arloliu/ncs/document"
	"github.com/arloliu/ncs/format"
	"github.com/arloliu/ncs/internal/options"
	"github.com/arloliu/ncs/schema"
	"github.com/arloliu/ncs/strtab"
)

// Decoder decodes decompressed payloads into tables.
//
// A Decoder is safe for concurrent use; each Decode call is independent.
type Decoder struct {
	cfg     *Config
	schemas schema.Registry
}

// New creates a Decoder.
func New(opts ...Option) (*Decoder, error) {
	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// Config returns the decoder configuration.
func (d *Decoder) Config() *Config {
	return d.cfg
}

// Select returns the strategy used for a table with header h. Unless a
// strategy is forced, tables whose entry section frames entries with a
// fixed column count are decoded differentially and all others by schema.
func (d *Decoder) Select(h *content.Header) format.Strategy {
	if d.cfg.strategy != format.StrategyAuto {
		return d.cfg.strategy
	}
	if h.EntryForm.FixedColumns() {
		return format.StrategyDifferential
	}

	return format.StrategySchema
}

// Decode decodes one decompressed payload into its table.
//
// Only a payload without a recognizable content header is an error. Bit
// level failures end the record stream early: the records decoded before
// the failure are returned and the failure is logged through diag.
func (d *Decoder) Decode(ctx context.Context, data []byte) (*document.Table, error) {
	h, err := content.Locate(data)
	if err != nil {
		return nil, fmt.Errorf("failed to locate content header: %w", err)
	}

	return d.DecodeHeader(ctx, h, data), nil
}

// DecodeHeader decodes data whose content header has already been located.
func (d *Decoder) DecodeHeader(ctx context.Context, h *content.Header, data []byte) *document.Table {
	log := diag.From(ctx)

	maxCount := 0
	if h.HasStringCount() {
		maxCount = h.StringCount
	}
	strs := strtab.Build(h.StringRegion(data), maxCount)

	strategy := d.Select(h)
	log.DebugContext(ctx, "decoding table",
		"type", h.TypeName,
		"format", h.FormatCode,
		"entry_form", h.EntryForm.String(),
		"field_count", h.FieldCount,
		"strings", strs.Len(),
		"binary_offset", h.BinaryOffset,
		"strategy", strategy.String(),
	)

	t := &document.Table{
		Name: h.TypeName,
		Deps: slices.Clone(h.Deps),
	}

	switch strategy {
	case format.StrategyDifferential:
		t.Records = decodeDifferential(ctx, strs.Strings(), h.TypeName, h.FieldCount)
	default:
		if inline := strtab.InlineNames(h.InlineRegion(data)); len(inline) > 0 {
			strs = strs.Merge(inline)
		}

		depTable := ""
		if len(h.Deps) > 0 {
			depTable = h.Deps[0]
		}

		rr := newRecordReader(ctx, h.Binary(data), strs, d.schemas.Lookup(h.FormatCode), depTable, d.cfg.maxNesting)
		t.Records = rr.records()
	}

	log.DebugContext(ctx, "decoded table", "type", h.TypeName, "records", len(t.Records))

	return t
}

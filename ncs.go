// Package ncs decodes NCS containers, the compressed tabular configuration
// format embedded in a game's packaged assets, into queryable documents.
//
// # Core Features
//
//   - Container decoding: stored, single-block and multi-block payloads
//   - Pluggable block decompressors: bundled, native, exec and pipe-exec
//   - Container scanning with manifest-collision filtering and dedup
//   - Schema-driven and differential record decoding, chosen per table
//   - Serial index, category and part extraction over the decoded tree
//
// # Basic Usage
//
// Decoding one container:
//
//	doc, err := ncs.Parse(data)
//	if err != nil {
//	    return err
//	}
//	for _, name := range doc.TableNames() {
//	    t, _ := doc.Table(name)
//	    fmt.Println(name, len(t.Records))
//	}
//
// Decoding every container in an extracted asset file into one document:
//
//	doc, err := ncs.ParseAll(ctx, pak)
//	parts := ncs.ExtractCategorizedParts(doc)
//
// The default backend is the bundled LZ4 decompressor, which cannot decode
// the vendor LZ blocks in shipped containers. Configure a native, exec or
// pipe-exec backend for those (WithConfig, or backend.type in the config
// file).
//
// Decoding is silent by default. Attach a logger with diag.WithLogger to
// see why a table stopped early.
//
// # Package Structure
//
// This package wraps the blob, decoder and document packages for the common
// cases. Use them directly for finer control, such as decompressing blocks
// in parallel or forcing a decode strategy.
package ncs

import (
	"context"
	"errors"
	"fmt"

	"github.com/arloliu/ncs/blob"
	"github.com/arloliu/ncs/config"
	"github.com/arloliu/ncs/decoder"
	"github.com/arloliu/ncs/diag"
	"github.com/arloliu/ncs/document"
	"github.com/arloliu/ncs/internal/options"
)

// Config collects the options of the parse functions.
type Config struct {
	blobOpts    []blob.DecoderOption
	decoderOpts []decoder.Option
}

// Option configures Parse, ParseContext and ParseAll.
type Option = options.Option[*Config]

// WithBlobOptions passes container decoder options, such as
// blob.WithDecompressor, to every decompression.
func WithBlobOptions(opts ...blob.DecoderOption) Option {
	return options.NoError(func(c *Config) {
		c.blobOpts = append(c.blobOpts, opts...)
	})
}

// WithDecoderOptions passes record decoder options, such as
// decoder.WithStrategy.
func WithDecoderOptions(opts ...decoder.Option) Option {
	return options.NoError(func(c *Config) {
		c.decoderOpts = append(c.decoderOpts, opts...)
	})
}

// WithConfig applies a loaded configuration: its backend, block concurrency,
// strategy and nesting limit.
func WithConfig(cfg *config.Config) Option {
	return options.New(func(c *Config) error {
		if cfg == nil {
			return nil
		}

		blobOpts, err := cfg.BlobOptions()
		if err != nil {
			return err
		}
		decoderOpts, err := cfg.DecoderOptions()
		if err != nil {
			return err
		}
		c.blobOpts = append(c.blobOpts, blobOpts...)
		c.decoderOpts = append(c.decoderOpts, decoderOpts...)

		return nil
	})
}

// Decompress reconstructs the payload of the container at the start of data.
func Decompress(data []byte, opts ...blob.DecoderOption) ([]byte, error) {
	return blob.Decompress(data, opts...)
}

// Scan finds every container embedded in data. See blob.Scan.
func Scan(data []byte) []blob.Payload {
	return blob.Scan(data)
}

// Parse decodes one container, or one already decompressed payload, into a
// document holding its table.
func Parse(data []byte, opts ...Option) (*document.Document, error) {
	return ParseContext(context.Background(), data, opts...)
}

// ParseContext is Parse with a context carrying an optional diagnostic
// logger.
//
// Returns:
//   - *document.Document: a document with one table
//   - error: decompression errors from package errs, or
//     errs.ErrNoContentHeader when the payload carries no table
func ParseContext(ctx context.Context, data []byte, opts ...Option) (*document.Document, error) {
	p, err := newParser(opts)
	if err != nil {
		return nil, err
	}

	t, err := p.parse(ctx, data)
	if err != nil {
		return nil, err
	}

	a := document.NewAssembler()
	a.Add(t)

	return a.Document(), nil
}

// ParseAll decodes every distinct container found in data into one
// document. Tables with the same name are merged.
//
// A container that fails does not stop the others: the document holds
// every table that decoded, and the returned error joins each failure,
// annotated with the container offset.
func ParseAll(ctx context.Context, data []byte, opts ...Option) (*document.Document, error) {
	p, err := newParser(opts)
	if err != nil {
		return nil, err
	}

	log := diag.From(ctx)
	a := document.NewAssembler()

	var failures []error
	for _, payload := range blob.ScanUnique(data) {
		t, err := p.parse(ctx, payload.Data)
		if err != nil {
			log.WarnContext(ctx, "container skipped", "offset", payload.Offset, "error", err)
			failures = append(failures, fmt.Errorf("container at 0x%x: %w", payload.Offset, err))

			continue
		}
		a.Add(t)
	}

	log.DebugContext(ctx, "parsed containers", "tables", a.Len(), "failures", len(failures))

	return a.Document(), errors.Join(failures...)
}

// ExtractSerialIndices returns the serial index of every entry and
// dependency entry that carries one. See document.ExtractSerialIndices.
func ExtractSerialIndices(doc *document.Document) []document.SerialIndex {
	return document.ExtractSerialIndices(doc)
}

// ExtractCategorizedParts returns (category, index, name) triples for every
// indexed part. See document.ExtractCategorizedParts.
func ExtractCategorizedParts(doc *document.Document) []document.CategorizedPart {
	return document.ExtractCategorizedParts(doc)
}

// ExtractCategoryNames maps category ids to a representative entry name.
func ExtractCategoryNames(doc *document.Document) map[uint32]string {
	return document.ExtractCategoryNames(doc)
}

// ExtractAllEntryNames maps every serial index to the first entry name
// carrying it.
func ExtractAllEntryNames(doc *document.Document) map[uint32]string {
	return document.ExtractAllEntryNames(doc)
}

// ExtractSharedParts returns the parts that dependency entries draw from
// other tables.
func ExtractSharedParts(doc *document.Document) []document.SharedPart {
	return document.ExtractSharedParts(doc)
}

type parser struct {
	blobOpts []blob.DecoderOption
	decoder  *decoder.Decoder
}

func newParser(opts []Option) (*parser, error) {
	cfg := &Config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	dec, err := decoder.New(cfg.decoderOpts...)
	if err != nil {
		return nil, err
	}

	return &parser{blobOpts: cfg.blobOpts, decoder: dec}, nil
}

func (p *parser) parse(ctx context.Context, data []byte) (*document.Table, error) {
	raw := data
	if blob.IsNCS(data) {
		var err error
		raw, err = blob.Decompress(data, p.blobOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress container: %w", err)
		}
	}

	return p.decoder.Decode(ctx, raw)
}

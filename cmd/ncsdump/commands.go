package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/arloliu/ncs"
	"github.com/arloliu/ncs/blob"
	"github.com/arloliu/ncs/decoder"
	"github.com/arloliu/ncs/document"
	"github.com/arloliu/ncs/format"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
	"sigs.k8s.io/yaml"
)

var errTerminal = errors.New("refusing to write binary output to a terminal; redirect it or use -o")

func runDecompress(_ context.Context, a *app, args []string) error {
	var out string

	fs := commandFlags(a, "decompress", "[-o out] <file>")
	fs.StringVarP(&out, "output", "o", "", "write the payload to this file instead of stdout")

	path, err := parseFileArg(fs, args)
	if err != nil || path == "" {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	blobOpts, err := a.cfg.BlobOptions()
	if err != nil {
		return err
	}

	raw, err := ncs.Decompress(data, blobOpts...)
	if err != nil {
		return fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	a.logger.Info("decompressed", "file", path, "size", humanize.IBytes(uint64(len(raw))))

	if out != "" {
		return os.WriteFile(out, raw, 0o644) //nolint:gosec
	}

	return writeBinary(a.stdout, raw)
}

func runParse(ctx context.Context, a *app, args []string) error {
	var outFormat, strategy string
	var all bool

	fs := commandFlags(a, "parse", "[--format json|yaml|cbor] [--strategy auto|schema|differential] [--all] <file>")
	fs.StringVarP(&outFormat, "format", "f", "json", "output format: json, yaml or cbor")
	fs.StringVar(&strategy, "strategy", "", "force a decode strategy: auto, schema or differential")
	fs.BoolVar(&all, "all", false, "decode every container embedded in the file")

	path, err := parseFileArg(fs, args)
	if err != nil || path == "" {
		return err
	}

	opts := []ncs.Option{ncs.WithConfig(a.cfg)}
	if strategy != "" {
		s, err := format.ParseStrategy(strategy)
		if err != nil {
			return err
		}
		opts = append(opts, ncs.WithDecoderOptions(decoder.WithStrategy(s)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	doc, err := parseFile(ctx, data, all, opts)
	if err != nil {
		return err
	}

	return writeDocument(a.stdout, doc, outFormat)
}

func runScan(_ context.Context, a *app, args []string) error {
	var unique bool

	fs := commandFlags(a, "scan", "[--unique] <file>")
	fs.BoolVar(&unique, "unique", false, "list byte-identical containers once")

	path, err := parseFileArg(fs, args)
	if err != nil || path == "" {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	payloads := blob.Scan(data)
	if unique {
		payloads = blob.ScanUnique(data)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tCOMPRESSED\tDECOMPRESSED\tFINGERPRINT\tDIGEST")
	for _, p := range payloads {
		fmt.Fprintf(tw, "0x%08x\t%s\t%s\t%016x\t%s\n",
			p.Offset,
			humanize.IBytes(uint64(p.Header.CompressedSize)),
			humanize.IBytes(uint64(p.Header.DecompressedSize)),
			p.Fingerprint,
			hex.EncodeToString(p.Digest[:]),
		)
	}

	for _, m := range blob.ScanManifests(data) {
		fmt.Fprintf(tw, "0x%08x\tmanifest\t%s\t\t\n", m.Offset, humanize.Comma(int64(len(m.Manifest.Entries))))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	a.logger.Info("scanned", "file", path, "containers", len(payloads), "size", humanize.IBytes(uint64(len(data))))

	return nil
}

func runParts(ctx context.Context, a *app, args []string) error {
	fs := commandFlags(a, "parts", "<file>")

	path, err := parseFileArg(fs, args)
	if err != nil || path == "" {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	doc, err := parseFile(ctx, data, true, []ncs.Option{ncs.WithConfig(a.cfg)})
	if err != nil {
		return err
	}

	names := ncs.ExtractCategoryNames(doc)

	w := bufio.NewWriter(a.stdout)
	fmt.Fprintln(w, "category\tcategory_name\tindex\tname")
	for _, p := range ncs.ExtractCategorizedParts(doc) {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", p.Category, names[p.Category], p.Index, p.Name)
	}

	return w.Flush()
}

// parseFile decodes the container at the start of data, or every embedded
// container when all is set. Containers that fail under all are logged and
// skipped.
func parseFile(ctx context.Context, data []byte, all bool, opts []ncs.Option) (*document.Document, error) {
	if !all {
		return ncs.ParseContext(ctx, data, opts...)
	}

	doc, err := ncs.ParseAll(ctx, data, opts...)
	if err != nil && len(doc.Tables) == 0 {
		return nil, err
	}

	return doc, nil
}

func writeDocument(w io.Writer, doc *document.Document, outFormat string) error {
	switch strings.ToLower(outFormat) {
	case "json":
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))

		return err
	case "yaml":
		b, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		y, err := yaml.JSONToYAML(b)
		if err != nil {
			return err
		}
		_, err = w.Write(y)

		return err
	case "cbor":
		b, err := doc.MarshalCBOR()
		if err != nil {
			return err
		}

		return writeBinary(w, b)
	default:
		return fmt.Errorf("unknown output format %q", outFormat)
	}
}

// writeBinary writes b unless w is a terminal.
func writeBinary(w io.Writer, b []byte) error {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec
		return errTerminal
	}

	_, err := w.Write(b)

	return err
}

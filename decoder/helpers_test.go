package decoder

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/arloliu/ncs/diag"
	"github.com/arloliu/ncs/document"
	"github.com/arloliu/ncs/schema"
	"github.com/arloliu/ncs/strtab"
)

// bitWriter packs fields MSB-first, the way the binary section stores them.
type bitWriter struct {
	buf []byte
	n   int
}

func (w *bitWriter) write(v uint64, width int) *bitWriter {
	for i := width - 1; i >= 0; i-- {
		if w.n%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if (v>>uint(i))&1 == 1 {
			w.buf[len(w.buf)-1] |= 0x80 >> uint(w.n%8)
		}
		w.n++
	}

	return w
}

func (w *bitWriter) bytes() []byte {
	return w.buf
}

// decodeRecords runs the schema strategy over binary.
func decodeRecords(t *testing.T, binary []byte, strs *strtab.Table, code string, maxNesting int) []document.Record {
	t.Helper()

	rr := newRecordReader(context.Background(), binary, strs, schema.Parse(code), "comp", maxNesting)

	return rr.records()
}

// captureLogs returns a context whose diag logger writes to the returned
// buffer.
func captureLogs(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return diag.WithLogger(context.Background(), logger), &buf
}

func cstrings(strs ...string) []byte {
	var b []byte
	for _, s := range strs {
		b = append(b, s...)
		b = append(b, 0)
	}

	return b
}

func onlyEntry(t *testing.T, rec document.Record) document.Entry {
	t.Helper()

	if len(rec.Entries) != 1 {
		t.Fatalf("record has %d entries, want 1", len(rec.Entries))
	}

	return rec.Entries[0]
}

func field(t *testing.T, e document.Entry, key string) document.Value {
	t.Helper()

	v, ok := e.Value.Get(key)
	if !ok {
		t.Fatalf("entry %q has no field %q (fields %v)", e.Key, key, e.Value.Keys())
	}

	return v
}

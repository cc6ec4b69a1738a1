package decoder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/ncs/diag"
	"github.com/arloliu/ncs/document"
	"github.com/arloliu/ncs/errs"
	"github.com/arloliu/ncs/format"
	"github.com/arloliu/ncs/internal/bitstream"
	"github.com/arloliu/ncs/schema"
	"github.com/arloliu/ncs/strtab"
)

const (
	variantBits       = 2
	depTagBits        = 2
	listCountBits     = 8
	listCountLimit    = 1000
	listItemLimit     = 1000
	depEntryLimit     = 10000
	depTagEnd         = 0
	depTagBare        = 1
	depTagNested      = 2
	depTagReference   = 3
	variantPair       = 1
	variantNested     = 2
	variantPairOfPair = 3
)

// errEndOfTable marks a record whose name is the empty or "none" sentinel.
var errEndOfTable = errors.New("end of table")

// record is one decoded record before it is placed in a document.Table.
type record struct {
	name   string
	fields map[string]document.Value
	tags   []document.Tag
	deps   []document.DepEntry
}

// recordReader decodes schema-driven records from a binary section.
type recordReader struct {
	ctx        context.Context
	log        *slog.Logger
	debug      bool
	r          *bitstream.Reader
	strs       *strtab.Table
	width      int
	schema     schema.Schema
	depTable   string
	maxNesting int
}

func newRecordReader(ctx context.Context, binary []byte, strs *strtab.Table, sch schema.Schema, depTable string, maxNesting int) *recordReader {
	return &recordReader{
		ctx:        ctx,
		log:        diag.From(ctx),
		debug:      diag.Enabled(ctx, slog.LevelDebug),
		r:          bitstream.NewReader(binary),
		strs:       strs,
		width:      strs.IndexWidth(),
		schema:     sch,
		depTable:   depTable,
		maxNesting: maxNesting,
	}
}

// records decodes records until the bits run out, a sentinel name is read,
// or a record fails. A failed record is dropped; the records before it are
// returned.
func (rr *recordReader) records() []document.Record {
	var out []document.Record

	for rr.r.HasBits(rr.width) {
		start := rr.r.Position()
		if rr.debug {
			rr.log.DebugContext(rr.ctx, "record start", "index", len(out), "bit", start)
		}

		rec, err := rr.record(0)
		if errors.Is(err, errEndOfTable) {
			if rr.debug {
				rr.log.DebugContext(rr.ctx, "sentinel record", "index", len(out), "bit", start)
			}

			break
		}
		if err != nil {
			rr.log.WarnContext(rr.ctx, "record aborted",
				"index", len(out),
				"bit", start,
				"remaining_bits", rr.r.Remaining(),
				"error", err,
			)

			break
		}

		out = append(out, rec.toDocument())
	}

	return out
}

func (rec *record) toDocument() document.Record {
	return document.Record{
		Tags: rec.tags,
		Entries: []document.Entry{{
			Key:        rec.name,
			Value:      document.Map(rec.fields),
			DepEntries: rec.deps,
		}},
	}
}

// value renders a nested record as a Map holding its name, its fields and,
// when present, its dependency entries.
func (rec *record) value() document.Value {
	fields := make(map[string]document.Value, len(rec.fields)+2)
	for k, v := range rec.fields {
		fields[k] = v
	}
	fields["name"] = document.Leaf(rec.name)

	if len(rec.deps) > 0 {
		deps := make([]document.Value, len(rec.deps))
		for i, de := range rec.deps {
			deps[i] = document.Map(map[string]document.Value{
				"key":   document.Leaf(de.Key),
				"value": de.Value,
			})
		}
		fields["dep_entries"] = document.Array(deps...)
	}

	return document.Map(fields)
}

// record decodes one record at the given nesting depth.
func (rr *recordReader) record(depth int) (*record, error) {
	if depth > rr.maxNesting {
		return nil, fmt.Errorf("%w: depth %d", errs.ErrNestingTooDeep, depth)
	}

	name, _, err := rr.readString()
	if err != nil {
		return nil, fmt.Errorf("record name: %w", err)
	}
	if isSentinel(name) {
		return nil, errEndOfTable
	}

	rec := &record{
		name:   name,
		fields: make(map[string]document.Value, rr.schema.Len()),
	}

	for i := 0; i < rr.schema.Len(); i++ {
		before := rr.r.Position()
		if err := rr.field(rec, i, depth); err != nil {
			return nil, fmt.Errorf("field %d (%s) of %q at bit %d: %w", i+1, rr.schema.Type(i), name, before, err)
		}
		if rr.debug {
			rr.log.DebugContext(rr.ctx, "field decoded",
				"record", name,
				"field", rr.schema.FieldName(i),
				"type", rr.schema.Type(i).String(),
				"bits", rr.r.Position()-before,
			)
		}
	}

	return rec, nil
}

// field decodes field i of the schema into rec.
func (rr *recordReader) field(rec *record, i, depth int) error {
	key := rr.schema.FieldName(i)

	switch rr.schema.Type(i) {
	case format.FieldPair:
		s, _, err := rr.readString()
		if err != nil {
			return err
		}
		rec.fields[key] = document.Leaf(s)
		rec.tags = append(rec.tags, document.KeyNameTag(s))

	case format.FieldU32:
		v, ok := rr.r.ReadUint32()
		if !ok {
			return errs.ErrInsufficientBits
		}
		rec.fields[key] = document.Leaf(strconv.FormatUint(uint64(v), 10))
		rec.tags = append(rec.tags, document.U32Tag(v))

	case format.FieldU32F32:
		v, ok := rr.r.ReadUint32()
		if !ok {
			return errs.ErrInsufficientBits
		}
		rec.fields[key] = document.Map(map[string]document.Value{
			"u32": document.Leaf(strconv.FormatUint(uint64(v), 10)),
			"f32": document.Leaf(strconv.FormatFloat(float64(math.Float32frombits(v)), 'g', -1, 32)),
		})
		rec.tags = append(rec.tags, document.F32Tag(v))

	case format.FieldList:
		list, err := rr.list()
		if err != nil {
			return err
		}
		rec.fields[key] = document.Strings(list)
		if kind, ok := document.TagKindOf(rr.schema.Char(i)); ok {
			rec.tags = append(rec.tags, document.ListTag(kind, list))
		}

	case format.FieldComplex, format.FieldNested:
		v, err := rr.nested(depth)
		if err != nil {
			return err
		}
		rec.fields[key] = v

	case format.FieldDepEntries:
		deps, err := rr.depEntries(depth)
		if err != nil {
			return err
		}
		rec.deps = append(rec.deps, deps...)

	case format.FieldVariant:
		v, err := rr.variant(depth)
		if err != nil {
			return err
		}
		rec.fields[key] = v
		rec.tags = append(rec.tags, document.VariantTag(v))

	default:
		rec.fields[key] = document.Null()
	}

	return nil
}

// readString reads one string index and resolves it.
func (rr *recordReader) readString() (string, uint32, error) {
	idx, ok := rr.r.ReadBits(rr.width)
	if !ok {
		return "", 0, errs.ErrInsufficientBits
	}

	s, ok := rr.strs.Get(int(idx)) //nolint: gosec
	if !ok {
		return "", 0, fmt.Errorf("%w: %d of %d", errs.ErrIndexOutOfRange, idx, rr.strs.Len())
	}

	return s, uint32(idx), nil //nolint: gosec
}

// list decodes a string list: an 8-bit count prefix followed by that many
// indices. The sentinel-terminated form, where a prefix of listCountLimit or
// more is the first index, is unreachable with an 8-bit prefix and is kept
// so the grammar stays complete if the prefix widens.
func (rr *recordReader) list() ([]string, error) {
	count, ok := rr.r.ReadBits(listCountBits)
	if !ok {
		return nil, errs.ErrInsufficientBits
	}
	if count == 0 {
		return []string{}, nil
	}

	if count < listCountLimit {
		if rr.debug {
			rr.log.DebugContext(rr.ctx, "counted list", "count", count)
		}

		list := make([]string, 0, count)
		for range count {
			s, _, err := rr.readString()
			if err != nil {
				return nil, err
			}
			list = append(list, s)
		}

		return list, nil
	}

	if rr.debug {
		rr.log.DebugContext(rr.ctx, "terminated list", "first", count)
	}

	first, ok := rr.strs.Get(int(count)) //nolint: gosec
	if !ok {
		return nil, fmt.Errorf("%w: %d of %d", errs.ErrIndexOutOfRange, count, rr.strs.Len())
	}
	if isSentinel(first) {
		return []string{}, nil
	}

	list := []string{first}
	for rr.r.HasBits(rr.width) && len(list) <= listItemLimit {
		s, _, err := rr.readString()
		if err != nil {
			return nil, err
		}
		if isSentinel(s) {
			break
		}
		list = append(list, s)
	}

	return list, nil
}

// nested decodes a sub-record in place. A sub-record that cannot be decoded
// is Null; only exceeding the nesting limit fails the enclosing record.
func (rr *recordReader) nested(depth int) (document.Value, error) {
	rec, err := rr.record(depth + 1)
	if err != nil {
		if errors.Is(err, errs.ErrNestingTooDeep) {
			return document.Null(), err
		}
		if rr.debug {
			rr.log.DebugContext(rr.ctx, "nested record is null", "depth", depth+1, "error", err)
		}

		return document.Null(), nil
	}

	return rec.value(), nil
}

// variant decodes a 2-bit selector and the value it selects.
func (rr *recordReader) variant(depth int) (document.Value, error) {
	sel, ok := rr.r.ReadBits(variantBits)
	if !ok {
		return document.Null(), errs.ErrInsufficientBits
	}

	switch sel {
	case variantPair:
		s, _, err := rr.readString()
		if err != nil {
			return document.Null(), err
		}

		return document.Leaf(s), nil

	case variantNested:
		return rr.nested(depth)

	case variantPairOfPair:
		a, _, err := rr.readString()
		if err != nil {
			return document.Null(), err
		}
		b, _, err := rr.readString()
		if err != nil {
			return document.Null(), err
		}

		return document.Leaf(a + ":" + b), nil

	default:
		return document.Null(), nil
	}
}

// depEntries decodes tagged dependency entries until a zero tag, a sentinel
// name, or too few bits for the next tag or name.
func (rr *recordReader) depEntries(depth int) ([]document.DepEntry, error) {
	var deps []document.DepEntry

	for len(deps) <= depEntryLimit {
		if !rr.r.HasBits(depTagBits) {
			break
		}
		tag, _ := rr.r.ReadBits(depTagBits)
		if tag == depTagEnd {
			break
		}
		if !rr.r.HasBits(rr.width) {
			break
		}

		name, idx, err := rr.readString()
		if err != nil {
			return nil, err
		}
		if isSentinel(name) {
			break
		}

		de := document.DepEntry{
			DepTableName: rr.depTable,
			DepIndex:     idx,
			Key:          name,
		}

		switch tag {
		case depTagBare:
		case depTagNested:
			v, err := rr.nested(depth)
			if err != nil {
				return nil, err
			}
			if !v.IsNull() {
				de.Value = document.Map(map[string]document.Value{"value": v})
			}
		case depTagReference:
			ref, _, err := rr.readString()
			if err != nil {
				return nil, err
			}
			de.Value = document.Map(map[string]document.Value{"ref": document.Ref(ref)})
		}

		deps = append(deps, de)
	}

	return deps, nil
}

// isSentinel reports whether s is the empty or "none" end marker.
func isSentinel(s string) bool {
	return s == "" || strings.EqualFold(s, "none")
}

package decoder

import (
	"context"
	"strings"

	"github.com/arloliu/ncs/diag"
	"github.com/arloliu/ncs/document"
	"github.com/arloliu/ncs/schema"
)

// decodeDifferential groups a table's strings into entries of fieldCount
// columns, name first. Names after the first are differential against the
// previous name, and a value slot may also carry the next entry's name.
// Decoding stops at the first name that looks like garbage.
func decodeDifferential(ctx context.Context, strs []string, typeName string, fieldCount int) []document.Record {
	if schema.GroupsByEntryName(typeName) {
		return decodeByEntryName(strs, typeName)
	}

	log := diag.From(ctx)

	valid := make([]string, 0, len(strs))
	for _, s := range strs {
		if !isMetadata(s) {
			valid = append(valid, s)
		}
	}

	perEntry := max(fieldCount, 1)
	valueCount := perEntry - 1

	var (
		records []document.Record
		base    string
		pending string
		started bool
	)

	for i := 0; i < len(valid); {
		raw := valid[i]
		usedPending := pending != ""
		if usedPending {
			raw = pending
		}

		name := ExpandAbbreviations(raw)
		if started {
			name = DecodeDifferentialName(raw, base)
		}
		base, started, pending = name, true, ""

		valueStart := i + 1
		if usedPending {
			valueStart = i
		}

		fields := make(map[string]document.Value, valueCount)
		for j := 0; j < valueCount && valueStart+j < len(valid); j++ {
			slot := valid[valueStart+j]

			v := scalarValue(slot)
			if value, next, ok := SplitPackedValue(slot); ok {
				pending = next
				v = document.Leaf(value)
			}
			fields[schema.ColumnName(typeName, j)] = v
		}

		if isGarbageEntry(name) {
			log.DebugContext(ctx, "differential decode stopped at garbage name", "name", name, "slot", i)
			break
		}

		records = append(records, entryRecord(name, fields))

		if usedPending {
			i = valueStart + valueCount
		} else {
			i += perEntry
		}
	}

	return records
}

// decodeByEntryName groups the strings that follow each pool entry name as
// that entry's values.
func decodeByEntryName(strs []string, typeName string) []document.Record {
	var (
		records []document.Record
		name    string
		values  []string
		open    bool
	)

	flush := func() {
		if !open {
			return
		}
		fields := make(map[string]document.Value, len(values))
		for i, v := range values {
			fields[schema.ColumnName(typeName, i)] = scalarValue(v)
		}
		records = append(records, entryRecord(name, fields))
	}

	for _, s := range strs {
		switch {
		case isPoolEntryName(s):
			flush()
			name, values, open = s, nil, true
		case open && !isMetadata(s):
			values = append(values, s)
		}
	}
	flush()

	return records
}

func entryRecord(name string, fields map[string]document.Value) document.Record {
	return document.Record{
		Entries: []document.Entry{{Key: name, Value: document.Map(fields)}},
	}
}

// scalarValue keeps a value's text, except that slash-rooted object paths
// become references.
func scalarValue(s string) document.Value {
	if strings.HasPrefix(s, "/") {
		return document.Ref(s)
	}

	return document.Leaf(s)
}

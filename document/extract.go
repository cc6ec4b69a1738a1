package document

import (
	"strconv"
	"strings"
)

// SerialIndex is one serial index found on an entry or dependency entry.
// DepTable is empty for entries.
type SerialIndex struct {
	Table    string `json:"table_name"`
	DepTable string `json:"dep_table"`
	PartName string `json:"part_name"`
	Index    uint32 `json:"index"`
}

// CategorizedPart is a part index within a category.
type CategorizedPart struct {
	Category uint32 `json:"category"`
	Index    uint32 `json:"index"`
	Name     string `json:"name"`
}

// SharedPart is a part from a named dependency table that belongs to no
// single category, such as elements or stat groups.
type SharedPart struct {
	DepTable string `json:"dep_table"`
	Index    uint32 `json:"index"`
	Name     string `json:"name"`
}

// walk visits every entry in table name order, then record and entry order.
func (d *Document) walk(fn func(table string, e *Entry)) {
	for _, name := range d.TableNames() {
		t := d.Tables[name]
		for ri := range t.Records {
			for ei := range t.Records[ri].Entries {
				fn(name, &t.Records[ri].Entries[ei])
			}
		}
	}
}

// ExtractSerialIndices returns every entry and dependency entry whose value
// carries a serialindex.
func ExtractSerialIndices(d *Document) []SerialIndex {
	var out []SerialIndex
	d.walk(func(table string, e *Entry) {
		if index, ok := SerialIndexOf(e.Value); ok {
			out = append(out, SerialIndex{Table: table, PartName: e.Key, Index: index})
		}
		for _, de := range e.DepEntries {
			if index, ok := SerialIndexOf(de.Value); ok {
				out = append(out, SerialIndex{Table: table, DepTable: de.DepTableName, PartName: de.Key, Index: index})
			}
		}
	})

	return out
}

// ExtractCategorizedParts returns (category, index, name) triples. An entry's
// own serial index is the category and the serial indices of its dependency
// entries are the parts. Entries without an index that share the key of an
// indexed entry extend that entry's category.
func ExtractCategorizedParts(d *Document) []CategorizedPart {
	categories := categoryKeys(d)

	var out []CategorizedPart
	d.walk(func(_ string, e *Entry) {
		category, ok := SerialIndexOf(e.Value)
		if !ok {
			category, ok = categories[e.Key]
		}
		if !ok {
			return
		}

		for _, de := range e.DepEntries {
			if index, ok := SerialIndexOf(de.Value); ok {
				out = append(out, CategorizedPart{Category: category, Index: index, Name: de.Key})
			}
		}
	})

	return out
}

// ExtractCategoryNames maps each category to the key of the first entry that
// has it and owns at least one indexed part. Entries that reuse the index
// space without parts are ignored.
func ExtractCategoryNames(d *Document) map[uint32]string {
	names := make(map[uint32]string)
	d.walk(func(_ string, e *Entry) {
		category, ok := SerialIndexOf(e.Value)
		if !ok {
			return
		}
		if _, seen := names[category]; seen {
			return
		}

		for _, de := range e.DepEntries {
			if _, ok := SerialIndexOf(de.Value); ok {
				names[category] = e.Key
				return
			}
		}
	})

	return names
}

// ExtractAllEntryNames maps every serial index to the key of the first entry
// that has it, whether or not the entry owns parts.
func ExtractAllEntryNames(d *Document) map[uint32]string {
	names := make(map[uint32]string)
	d.walk(func(_ string, e *Entry) {
		if index, ok := SerialIndexOf(e.Value); ok {
			if _, seen := names[index]; !seen {
				names[index] = e.Key
			}
		}
	})

	return names
}

// ExtractSharedParts returns the indexed dependency entries of entries that
// neither have a serial index nor share a key with an entry that does.
func ExtractSharedParts(d *Document) []SharedPart {
	categories := categoryKeys(d)

	var out []SharedPart
	d.walk(func(_ string, e *Entry) {
		if _, ok := SerialIndexOf(e.Value); ok {
			return
		}
		if _, ok := categories[e.Key]; ok {
			return
		}

		for _, de := range e.DepEntries {
			if de.DepTableName == "" {
				continue
			}
			if index, ok := SerialIndexOf(de.Value); ok {
				out = append(out, SharedPart{DepTable: de.DepTableName, Index: index, Name: de.Key})
			}
		}
	})

	return out
}

// categoryKeys maps entry keys to the first serial index seen for them.
func categoryKeys(d *Document) map[string]uint32 {
	keys := make(map[string]uint32)
	d.walk(func(_ string, e *Entry) {
		if index, ok := SerialIndexOf(e.Value); ok {
			if _, seen := keys[e.Key]; !seen {
				keys[e.Key] = index
			}
		}
	})

	return keys
}

// SerialIndexOf finds a "serialindex" field in v, searching Maps and Arrays
// depth first with Map fields in name order, and parses its index. The
// serialindex may be a Leaf or a Map with an "index" Leaf; typed literals
// such as int'237' are unwrapped.
func SerialIndexOf(v Value) (uint32, bool) {
	switch v.Kind() {
	case KindMap:
		if si, ok := v.Get("serialindex"); ok {
			return parseSerialIndex(si)
		}
		for _, k := range v.Keys() {
			f, _ := v.Get(k)
			if index, ok := SerialIndexOf(f); ok {
				return index, true
			}
		}
	case KindArray:
		for _, item := range v.Items() {
			if index, ok := SerialIndexOf(item); ok {
				return index, true
			}
		}
	}

	return 0, false
}

func parseSerialIndex(si Value) (uint32, bool) {
	if si.Kind() == KindMap {
		var ok bool
		if si, ok = si.Get("index"); !ok {
			return 0, false
		}
	}
	if si.Kind() != KindLeaf {
		return 0, false
	}

	s, _ := si.Str()
	if start := strings.IndexByte(s, '\''); start >= 0 {
		end := strings.LastIndexByte(s, '\'')
		if end <= start {
			end = len(s)
		}
		s = s[start+1 : end]
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint32(n), true
}

package document

import (
	"maps"
	"slices"

	"github.com/fxamacker/cbor/v2"
)

var cborMode = mustCBORMode()

func mustCBORMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}

	return em
}

// Document is every table decoded from one or more payloads, keyed by name.
type Document struct {
	Tables map[string]*Table `json:"tables"`
}

// New creates an empty Document.
func New() *Document {
	return &Document{Tables: make(map[string]*Table)}
}

// Table returns the table with the given name.
func (d *Document) Table(name string) (*Table, bool) {
	t, ok := d.Tables[name]
	return t, ok
}

// TableNames returns the table names, sorted.
func (d *Document) TableNames() []string {
	return slices.Sorted(maps.Keys(d.Tables))
}

// MarshalCBOR encodes the document with deterministic CBOR encoding.
func (d *Document) MarshalCBOR() ([]byte, error) {
	type plain Document
	return cborMode.Marshal((*plain)(d))
}

// Table is one named table: its dependency table names and its records in
// decode order.
type Table struct {
	Name    string   `json:"name"`
	Deps    []string `json:"deps"`
	Records []Record `json:"records"`
}

// Record is one decoded record. Tags carry its scalar fields in wire order.
type Record struct {
	Tags    []Tag   `json:"tags,omitempty"`
	Entries []Entry `json:"entries"`
}

// Entry is a named value with the dependency entries drawn from other tables.
type Entry struct {
	Key        string     `json:"key"`
	Value      Value      `json:"value"`
	DepEntries []DepEntry `json:"dep_entries"`
}

// DepEntry links an entry to a name in a dependency table.
type DepEntry struct {
	DepTableName string `json:"dep_table_name"`
	DepIndex     uint32 `json:"dep_index"`
	Key          string `json:"key"`
	Value        Value  `json:"value"`
}

// Equal reports structural equality.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}

	return t.Name == o.Name &&
		slices.Equal(t.Deps, o.Deps) &&
		slices.EqualFunc(t.Records, o.Records, Record.Equal)
}

// Equal reports structural equality.
func (r Record) Equal(o Record) bool {
	return slices.EqualFunc(r.Tags, o.Tags, Tag.Equal) &&
		slices.EqualFunc(r.Entries, o.Entries, Entry.Equal)
}

// Equal reports structural equality.
func (e Entry) Equal(o Entry) bool {
	return e.Key == o.Key &&
		e.Value.Equal(o.Value) &&
		slices.EqualFunc(e.DepEntries, o.DepEntries, DepEntry.Equal)
}

// Equal reports structural equality.
func (d DepEntry) Equal(o DepEntry) bool {
	return d.DepTableName == o.DepTableName &&
		d.DepIndex == o.DepIndex &&
		d.Key == o.Key &&
		d.Value.Equal(o.Value)
}

// Equal reports structural equality.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}

	return maps.EqualFunc(d.Tables, o.Tables, (*Table).Equal)
}

package strtab

import (
	"slices"

	"github.com/arloliu/ncs/internal/bitstream"
)

// Table is an ordered string table with a reverse index.
//
// A Table is immutable once built and safe for concurrent use.
type Table struct {
	strings []string
	index   map[string]int
}

// New creates a table holding strs in order, without filtering.
func New(strs ...string) *Table {
	b := NewBuilder(len(strs))
	for _, s := range strs {
		b.Append(s)
	}

	return b.Table()
}

// Get returns the string at index i.
func (t *Table) Get(i int) (string, bool) {
	if i < 0 || i >= len(t.strings) {
		return "", false
	}

	return t.strings[i], true
}

// Find returns the first index holding s.
func (t *Table) Find(s string) (int, bool) {
	i, ok := t.index[s]
	return i, ok
}

// Len returns the number of strings.
func (t *Table) Len() int {
	return len(t.strings)
}

// Strings returns a copy of the strings in index order.
func (t *Table) Strings() []string {
	return slices.Clone(t.strings)
}

// IndexWidth returns the bit width of one string index, ceil(log2(Len())),
// and at least 1.
func (t *Table) IndexWidth() int {
	return bitstream.IndexWidth(len(t.strings))
}

// Merge returns a new table with names that t does not already contain
// appended in order. t is not modified.
func (t *Table) Merge(names []string) *Table {
	b := NewBuilder(len(t.strings) + len(names))
	for _, s := range t.strings {
		b.Append(s)
	}
	for _, s := range names {
		if _, ok := b.index[s]; !ok {
			b.Append(s)
		}
	}

	return b.Table()
}

// Builder accumulates a Table.
type Builder struct {
	strings []string
	index   map[string]int
}

// NewBuilder creates a Builder with room for capacity strings.
func NewBuilder(capacity int) *Builder {
	return &Builder{
		strings: make([]string, 0, capacity),
		index:   make(map[string]int, capacity),
	}
}

// Append adds s unconditionally.
func (b *Builder) Append(s string) {
	if _, ok := b.index[s]; !ok {
		b.index[s] = len(b.strings)
	}
	b.strings = append(b.strings, s)
}

// Add validates an extracted run and adds it, split into its entry names
// when it is packed. It reports whether anything was added.
func (b *Builder) Add(run string) bool {
	if !IsValid(run) {
		return false
	}

	if !IsPacked(run) {
		b.Append(run)
		return true
	}

	for _, part := range SplitPacked(run) {
		b.Append(part)
	}

	return true
}

// Len returns the number of strings added so far.
func (b *Builder) Len() int {
	return len(b.strings)
}

// Table returns the built table. The Builder must not be used afterwards.
func (b *Builder) Table() *Table {
	return &Table{strings: b.strings, index: b.index}
}

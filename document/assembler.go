package document

import "slices"

// Assembler collects decoded tables into one Document. Tables that share a
// name are merged: records are appended in arrival order and dependency
// names are unioned in first-seen order.
//
// An Assembler is not safe for concurrent use.
type Assembler struct {
	doc *Document
}

// NewAssembler creates an empty Assembler.
func NewAssembler() *Assembler {
	return &Assembler{doc: New()}
}

// Add merges t into the document. t is copied; later changes to it are not
// observed.
func (a *Assembler) Add(t *Table) {
	if t == nil {
		return
	}

	existing, ok := a.doc.Tables[t.Name]
	if !ok {
		a.doc.Tables[t.Name] = &Table{
			Name:    t.Name,
			Deps:    slices.Clone(t.Deps),
			Records: slices.Clone(t.Records),
		}

		return
	}

	for _, dep := range t.Deps {
		if !slices.Contains(existing.Deps, dep) {
			existing.Deps = append(existing.Deps, dep)
		}
	}
	existing.Records = append(existing.Records, t.Records...)
}

// Len returns the number of distinct tables added.
func (a *Assembler) Len() int {
	return len(a.doc.Tables)
}

// Document returns the assembled document. The Assembler must not be used
// afterwards.
func (a *Assembler) Document() *Document {
	doc := a.doc
	a.doc = nil

	return doc
}

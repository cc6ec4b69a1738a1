// Package schema turns a table's format code into the ordered list of typed
// fields its records carry, and names the value columns of known table types.
//
// A format code holds one character per field, for example "abcj". The
// first character is the record name slot and is always a Pair; the schema
// proper is the rest:
//
//	s := schema.Parse("abcj")
//	s.Len()         // 3
//	s.Type(0)       // format.FieldU32
//	s.FieldName(0)  // "field_1"
package schema

import (
	"strconv"
	"strings"
	"sync"

	"github.com/arloliu/ncs/format"
)

// Schema is the typed field list of one format code, name slot excluded.
// A Schema is immutable and safe for concurrent use.
type Schema struct {
	code  string
	types []format.FieldType
}

// Parse builds the Schema of a full wire format code. Characters with no
// known type map to format.FieldUnknown.
func Parse(code string) Schema {
	if len(code) == 0 {
		return Schema{}
	}

	fields := code[1:]
	types := make([]format.FieldType, len(fields))
	for i := 0; i < len(fields); i++ {
		types[i] = format.FieldTypeOf(fields[i])
	}

	return Schema{code: code, types: types}
}

// Code returns the full format code, name slot included.
func (s Schema) Code() string { return s.code }

// Len returns the number of fields after the name.
func (s Schema) Len() int { return len(s.types) }

// Type returns the type of field i.
func (s Schema) Type(i int) format.FieldType { return s.types[i] }

// Char returns the format code character of field i.
func (s Schema) Char(i int) byte { return s.code[i+1] }

// FieldName returns the positional name of field i. Positions count the
// name slot, so the first field is "field_1".
func (s Schema) FieldName(i int) string {
	return "field_" + strconv.Itoa(i+1)
}

// HasUnknown reports whether any field has no known type.
func (s Schema) HasUnknown() bool {
	for _, t := range s.types {
		if t == format.FieldUnknown {
			return true
		}
	}

	return false
}

func (s Schema) String() string {
	var b strings.Builder
	b.WriteString(s.code)
	b.WriteByte('[')
	for i, t := range s.types {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.String())
	}
	b.WriteByte(']')

	return b.String()
}

// Registry caches parsed schemas by format code. The zero value is ready to
// use and safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]Schema
}

// Lookup returns the Schema of code, parsing it on first use.
func (r *Registry) Lookup(code string) Schema {
	r.mu.RLock()
	s, ok := r.schemas[code]
	r.mu.RUnlock()
	if ok {
		return s
	}

	s = Parse(code)

	r.mu.Lock()
	if r.schemas == nil {
		r.schemas = make(map[string]Schema)
	}
	r.schemas[code] = s
	r.mu.Unlock()

	return s
}

// Len returns the number of cached schemas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.schemas)
}

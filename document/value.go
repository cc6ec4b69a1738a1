package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull  Kind = 0x0
	KindLeaf  Kind = 0x1
	KindArray Kind = 0x2
	KindMap   Kind = 0x3
	KindRef   Kind = 0x4
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindLeaf:
		return "leaf"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Value is a decoded field value: Null, Leaf(string), Array, Map or Ref.
//
// The zero Value is Null. Values are immutable; the constructors copy their
// arguments.
type Value struct {
	kind   Kind
	str    string
	items  []Value
	fields map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Leaf returns a scalar value.
func Leaf(s string) Value { return Value{kind: KindLeaf, str: s} }

// RefKey is the object key a Ref encodes under in JSON and CBOR.
const RefKey = "$ref"

// Ref returns a reference to another named object.
func Ref(s string) Value { return Value{kind: KindRef, str: s} }

// Array returns an ordered sequence value.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: slices.Clone(items)}
}

// Map returns a name to value mapping. A nil map gives an empty Map.
func Map(fields map[string]Value) Value {
	m := make(map[string]Value, len(fields))
	maps.Copy(m, fields)

	return Value{kind: KindMap, fields: m}
}

// Strings returns an Array of leaves.
func Strings(strs []string) Value {
	items := make([]Value, len(strs))
	for i, s := range strs {
		items[i] = Leaf(s)
	}

	return Value{kind: KindArray, items: items}
}

// Kind returns the variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string of a Leaf or the target of a Ref.
func (v Value) Str() (string, bool) {
	if v.kind == KindLeaf || v.kind == KindRef {
		return v.str, true
	}

	return "", false
}

// Items returns the elements of an Array. The slice must not be modified.
func (v Value) Items() []Value {
	return v.items
}

// Len returns the number of Array elements or Map fields.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindMap:
		return len(v.fields)
	default:
		return 0
	}
}

// Get returns a Map field.
func (v Value) Get(key string) (Value, bool) {
	f, ok := v.fields[key]
	return f, ok
}

// Keys returns the Map field names, sorted.
func (v Value) Keys() []string {
	return slices.Sorted(maps.Keys(v.fields))
}

// Equal reports structural equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindLeaf, KindRef:
		return v.str == o.str
	case KindArray:
		return slices.EqualFunc(v.items, o.items, Value.Equal)
	case KindMap:
		return maps.EqualFunc(v.fields, o.fields, Value.Equal)
	default:
		return false
	}
}

// Interface converts v into a tree of nil, string, []any and map[string]any.
// A Ref becomes map[string]any{"$ref": target}.
func (v Value) Interface() any {
	switch v.kind {
	case KindLeaf:
		return v.str
	case KindRef:
		return map[string]any{RefKey: v.str}
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}

		return out
	case KindMap:
		out := make(map[string]any, len(v.fields))
		for k, f := range v.fields {
			out[k] = f.Interface()
		}

		return out
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindLeaf:
		return fmt.Sprintf("%q", v.str)
	case KindRef:
		return fmt.Sprintf("ref(%q)", v.str)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return v.kind.String()
		}

		return string(b)
	}
}

// MarshalJSON encodes Null as null, Leaf as a string, Array as an array, Map
// as an object and Ref as {"$ref": target}. Decoded field names never start
// with '$', so a Map never encodes like a Ref.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON is the inverse of MarshalJSON. An object whose only field is
// a string under RefKey decodes to a Ref.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("failed to decode value: empty input")
	}

	switch data[0] {
	case 'n':
		*v = Null()
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Leaf(s)
	case '[':
		var items []Value
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*v = Value{kind: KindArray, items: items}
	case '{':
		var fields map[string]Value
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		if ref, ok := fields[RefKey]; ok && len(fields) == 1 && ref.kind == KindLeaf {
			*v = Ref(ref.str)
			return nil
		}
		if fields == nil {
			fields = map[string]Value{}
		}
		*v = Value{kind: KindMap, fields: fields}
	default:
		return fmt.Errorf("failed to decode value: unexpected %q", data[0])
	}

	return nil
}

// MarshalCBOR encodes the same tree as MarshalJSON, deterministically.
func (v Value) MarshalCBOR() ([]byte, error) {
	return cborMode.Marshal(v.Interface())
}

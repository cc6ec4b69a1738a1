package document

import (
	"encoding/json"
	"fmt"
	"math"
)

// TagKind is the field code a Tag was decoded from.
type TagKind byte

const (
	TagKeyName   TagKind = 'a'
	TagU32       TagKind = 'b'
	TagF32       TagKind = 'c'
	TagNameListD TagKind = 'd'
	TagNameListE TagKind = 'e'
	TagNameListF TagKind = 'f'
	TagVariant   TagKind = 'p'
)

// TagKindOf returns the tag kind for a format code character.
func TagKindOf(c byte) (TagKind, bool) {
	switch TagKind(c) {
	case TagKeyName, TagU32, TagF32, TagNameListD, TagNameListE, TagNameListF, TagVariant:
		return TagKind(c), true
	default:
		return 0, false
	}
}

// Tag is per-record metadata recorded for each scalar field, in wire order.
// Which fields are meaningful depends on Kind.
type Tag struct {
	Kind TagKind
	// Pair holds the resolved string of a TagKeyName.
	Pair string
	// U32 holds the raw word of a TagU32 or TagF32.
	U32 uint32
	// List holds the names of a TagNameListD, TagNameListE or TagNameListF.
	List []string
	// Variant holds the decoded value of a TagVariant.
	Variant Value
}

// KeyNameTag returns a TagKeyName.
func KeyNameTag(pair string) Tag { return Tag{Kind: TagKeyName, Pair: pair} }

// U32Tag returns a TagU32.
func U32Tag(v uint32) Tag { return Tag{Kind: TagU32, U32: v} }

// F32Tag returns a TagF32 for the raw word v.
func F32Tag(v uint32) Tag { return Tag{Kind: TagF32, U32: v} }

// ListTag returns a name list tag of the given kind.
func ListTag(kind TagKind, list []string) Tag { return Tag{Kind: kind, List: list} }

// VariantTag returns a TagVariant.
func VariantTag(v Value) Tag { return Tag{Kind: TagVariant, Variant: v} }

// F32 reinterprets the raw word as an IEEE-754 float.
func (t Tag) F32() float32 {
	return math.Float32frombits(t.U32)
}

// Equal reports structural equality.
func (t Tag) Equal(o Tag) bool {
	if t.Kind != o.Kind || t.Pair != o.Pair || t.U32 != o.U32 || len(t.List) != len(o.List) {
		return false
	}
	for i := range t.List {
		if t.List[i] != o.List[i] {
			return false
		}
	}

	return t.Variant.Equal(o.Variant)
}

// Interface converts t into its "__tag" discriminated object.
func (t Tag) Interface() map[string]any {
	out := map[string]any{"__tag": string(rune(t.Kind))}
	switch t.Kind {
	case TagKeyName:
		out["pair"] = t.Pair
	case TagU32:
		out["value"] = t.U32
	case TagF32:
		out["u32_value"] = t.U32
		out["f32_value"] = t.F32()
	case TagNameListD, TagNameListE, TagNameListF:
		list := t.List
		if list == nil {
			list = []string{}
		}
		out["list"] = list
	case TagVariant:
		out["variant"] = t.Variant.Interface()
	}

	return out
}

func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Interface())
}

type tagWire struct {
	Tag      string   `json:"__tag"`
	Pair     string   `json:"pair"`
	Value    uint32   `json:"value"`
	U32Value uint32   `json:"u32_value"`
	List     []string `json:"list"`
	Variant  Value    `json:"variant"`
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	var w tagWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if len(w.Tag) != 1 {
		return fmt.Errorf("failed to decode tag: discriminator %q", w.Tag)
	}

	kind, ok := TagKindOf(w.Tag[0])
	if !ok {
		return fmt.Errorf("failed to decode tag: unknown discriminator %q", w.Tag)
	}

	switch kind {
	case TagKeyName:
		*t = KeyNameTag(w.Pair)
	case TagU32:
		*t = U32Tag(w.Value)
	case TagF32:
		*t = F32Tag(w.U32Value)
	case TagNameListD, TagNameListE, TagNameListF:
		*t = ListTag(kind, w.List)
	case TagVariant:
		*t = VariantTag(w.Variant)
	}

	return nil
}

func (t Tag) MarshalCBOR() ([]byte, error) {
	return cborMode.Marshal(t.Interface())
}

package document

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

func sampleValue() Value {
	return Map(map[string]Value{
		"serialindex": Map(map[string]Value{
			"index":  Leaf("int'237'"),
			"status": Leaf("Active"),
		}),
		"parts":  Strings([]string{"a", "b"}),
		"link":   Ref("/Game/Gear/Thing"),
		"absent": Null(),
	})
}

func TestValue_JSON(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"null", Null(), `null`},
		{"leaf", Leaf("hello"), `"hello"`},
		{"array", Array(Leaf("a"), Leaf("b")), `["a","b"]`},
		{"empty array", Array(), `[]`},
		{"map", Map(map[string]Value{"k": Leaf("v")}), `{"k":"v"}`},
		{"empty map", Map(nil), `{}`},
		{"ref", Ref("x"), `{"$ref":"x"}`},
		{"map with a ref field", Map(map[string]Value{"ref": Leaf("x")}), `{"ref":"x"}`},
		{"ref field holding a ref", Map(map[string]Value{"ref": Ref("x")}), `{"ref":{"$ref":"x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.value)
			require.NoError(t, err)
			require.JSONEq(t, tt.want, string(got))

			var back Value
			require.NoError(t, json.Unmarshal(got, &back))
			require.True(t, tt.value.Equal(back), "got %s", back)
		})
	}
}

func TestValue_JSONRoundTripNested(t *testing.T) {
	v := sampleValue()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var back Value
	require.NoError(t, json.Unmarshal(data, &back))
	require.True(t, v.Equal(back))
}

func TestValue_UnmarshalJSONErrors(t *testing.T) {
	var v Value
	require.Error(t, json.Unmarshal([]byte(`42`), &v))
	require.Error(t, v.UnmarshalJSON(nil))
}

func TestValue_Equal(t *testing.T) {
	require.True(t, Null().Equal(Value{}))
	require.False(t, Leaf("x").Equal(Ref("x")))
	require.False(t, Leaf("x").Equal(Leaf("y")))
	require.False(t, Array(Leaf("a")).Equal(Array(Leaf("a"), Leaf("b"))))
	require.False(t, Map(map[string]Value{"a": Null()}).Equal(Map(map[string]Value{"b": Null()})))
	require.True(t, sampleValue().Equal(sampleValue()))
}

func TestValue_Accessors(t *testing.T) {
	v := sampleValue()
	require.Equal(t, KindMap, v.Kind())
	require.Equal(t, 4, v.Len())
	require.Equal(t, []string{"absent", "link", "parts", "serialindex"}, v.Keys())

	link, ok := v.Get("link")
	require.True(t, ok)
	target, ok := link.Str()
	require.True(t, ok)
	require.Equal(t, "/Game/Gear/Thing", target)

	parts, _ := v.Get("parts")
	require.Len(t, parts.Items(), 2)

	_, ok = Null().Str()
	require.False(t, ok)
	require.Equal(t, "ref(\"x\")", Ref("x").String())
}

func TestValue_ConstructorsCopy(t *testing.T) {
	fields := map[string]Value{"a": Leaf("1")}
	v := Map(fields)
	fields["b"] = Leaf("2")
	require.Equal(t, 1, v.Len())

	items := []Value{Leaf("1")}
	a := Array(items...)
	items[0] = Leaf("changed")
	s, _ := a.Items()[0].Str()
	require.Equal(t, "1", s)
}

func TestValue_CBOR(t *testing.T) {
	v := sampleValue()

	first, err := cbor.Marshal(v)
	require.NoError(t, err)
	second, err := v.MarshalCBOR()
	require.NoError(t, err)
	require.Equal(t, first, second, "encoding must be deterministic")

	var plain struct {
		Link   map[string]string `cbor:"link"`
		Parts  []string          `cbor:"parts"`
		Absent any               `cbor:"absent"`
	}
	require.NoError(t, cbor.Unmarshal(first, &plain))
	require.Equal(t, map[string]string{RefKey: "/Game/Gear/Thing"}, plain.Link)
	require.Equal(t, []string{"a", "b"}, plain.Parts)
	require.Nil(t, plain.Absent)
}

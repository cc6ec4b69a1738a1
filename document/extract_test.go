package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func indexed(index string) Value {
	return Map(map[string]Value{
		"serialindex": Map(map[string]Value{"index": Leaf(index)}),
	})
}

func docOf(tables ...*Table) *Document {
	a := NewAssembler()
	for _, t := range tables {
		a.Add(t)
	}

	return a.Document()
}

func entriesTable(name string, entries ...Entry) *Table {
	return &Table{Name: name, Records: []Record{{Entries: entries}}}
}

func TestExtractCategorizedParts(t *testing.T) {
	doc := docOf(entriesTable("inv",
		Entry{
			Key:   "Cat_5",
			Value: indexed("5"),
			DepEntries: []DepEntry{
				{DepTableName: "inv_comp", Key: "PartA", Value: indexed("1")},
				{DepTableName: "inv_comp", Key: "PartB", Value: indexed("2")},
			},
		},
	))

	require.Equal(t, []CategorizedPart{
		{Category: 5, Index: 1, Name: "PartA"},
		{Category: 5, Index: 2, Name: "PartB"},
	}, ExtractCategorizedParts(doc))
}

func TestExtractCategorizedParts_Extension(t *testing.T) {
	doc := docOf(
		entriesTable("a_root", Entry{
			Key:        "Weapon",
			Value:      indexed("int'12'"),
			DepEntries: []DepEntry{{Key: "barrel_01", Value: indexed("1")}},
		}),
		entriesTable("b_ext", Entry{
			Key:        "Weapon",
			Value:      Map(map[string]Value{"note": Leaf("extension")}),
			DepEntries: []DepEntry{{Key: "barrel_legendary", Value: indexed("40")}, {Key: "no_index", Value: Null()}},
		}),
	)

	require.Equal(t, []CategorizedPart{
		{Category: 12, Index: 1, Name: "barrel_01"},
		{Category: 12, Index: 40, Name: "barrel_legendary"},
	}, ExtractCategorizedParts(doc))
}

func TestExtractSerialIndices(t *testing.T) {
	doc := docOf(entriesTable("inv",
		Entry{
			Key:        "Cat_5",
			Value:      indexed("5"),
			DepEntries: []DepEntry{{DepTableName: "inv_comp", Key: "PartA", Value: indexed("1")}},
		},
		Entry{Key: "plain", Value: Leaf("x")},
	))

	require.Equal(t, []SerialIndex{
		{Table: "inv", PartName: "Cat_5", Index: 5},
		{Table: "inv", DepTable: "inv_comp", PartName: "PartA", Index: 1},
	}, ExtractSerialIndices(doc))
}

func TestExtractCategoryNames(t *testing.T) {
	doc := docOf(entriesTable("inv",
		Entry{Key: "Cosmetic", Value: indexed("3")},
		Entry{Key: "Shotgun", Value: indexed("3"), DepEntries: []DepEntry{{Key: "p", Value: indexed("1")}}},
		Entry{Key: "Shotgun_Dup", Value: indexed("3"), DepEntries: []DepEntry{{Key: "q", Value: indexed("2")}}},
	))

	require.Equal(t, map[uint32]string{3: "Shotgun"}, ExtractCategoryNames(doc))
	require.Equal(t, map[uint32]string{3: "Cosmetic"}, ExtractAllEntryNames(doc))
}

func TestExtractSharedParts(t *testing.T) {
	doc := docOf(entriesTable("inv",
		Entry{Key: "Cat", Value: indexed("1"), DepEntries: []DepEntry{{DepTableName: "comp", Key: "c", Value: indexed("1")}}},
		Entry{Key: "Cat", DepEntries: []DepEntry{{DepTableName: "comp", Key: "ext", Value: indexed("2")}}},
		Entry{Key: "pool", DepEntries: []DepEntry{
			{DepTableName: "element", Key: "fire", Value: indexed("4")},
			{Key: "unnamed", Value: indexed("5")},
		}},
	))

	require.Equal(t, []SharedPart{{DepTable: "element", Index: 4, Name: "fire"}}, ExtractSharedParts(doc))
}

func TestSerialIndexOf(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  uint32
		ok    bool
	}{
		{"map index", indexed("42"), 42, true},
		{"typed literal", indexed("int'237'"), 237, true},
		{"leaf serialindex", Map(map[string]Value{"serialindex": Leaf("9")}), 9, true},
		{"nested in array", Array(Null(), indexed("7")), 7, true},
		{"nested map", Map(map[string]Value{"outer": indexed("8")}), 8, true},
		{"not numeric", indexed("abc"), 0, false},
		{"negative", indexed("-1"), 0, false},
		{"no index", Map(map[string]Value{"serialindex": Map(nil)}), 0, false},
		{"leaf", Leaf("5"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SerialIndexOf(tt.value)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

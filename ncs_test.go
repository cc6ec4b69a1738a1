package ncs

import (
	"bytes"
	"context"
	"testing"

	"github.com/arloliu/ncs/config"
	"github.com/arloliu/ncs/decoder"
	"github.com/arloliu/ncs/document"
	"github.com/arloliu/ncs/errs"
	"github.com/arloliu/ncs/format"
	"github.com/arloliu/ncs/section"
	"github.com/stretchr/testify/require"
)

func cstrings(strs ...string) []byte {
	var b []byte
	for _, s := range strs {
		b = append(b, s...)
		b = append(b, 0)
	}

	return b
}

// invPayload is a decompressed "inv" table holding the record Alpha with a
// 32-bit field and a bare dependency entry Beta.
func invPayload() []byte {
	return bytes.Join([][]byte{
		{0, 0, 0, 0},
		cstrings("inv"),
		{0x00},
		cstrings("inv_comp"),
		{0x01},
		[]byte("abjx"),
		{0x01, 0x02, 0x30},
		cstrings("Alpha", "Beta"),
		{0x01, 0x00, 0x02, 0xe9},
		cstrings("none"),
		{0x01, 0x00, 0x00, 0x01, 0xd4, 0x80},
	}, nil)
}

// rarityPayload is a decompressed "rarity" table with one differential entry.
func rarityPayload() []byte {
	return bytes.Join([][]byte{
		{0, 0, 0, 0},
		cstrings("rarity"),
		{0x02, 0x00, 0x01},
		[]byte("abjx"),
		{0x01, 0x03, 0xc3},
		cstrings("Common", "10", "blue"),
		{0x01, 0x00, 0x02, 0xe9},
		cstrings("none", "base"),
		bytes.Repeat([]byte{0xaa}, 96),
	}, nil)
}

// stored wraps payload in an uncompressed container.
func stored(payload []byte) []byte {
	h := section.Header{
		Version:          section.Version,
		DecompressedSize: uint32(len(payload)), //nolint:gosec
		CompressedSize:   uint32(len(payload)), //nolint:gosec
	}

	return append(h.Bytes(), payload...)
}

// corrupt is a compressed container whose region lacks the inner magic.
func corrupt() []byte {
	h := section.Header{
		Version:          section.Version,
		CompressionFlag:  1,
		DecompressedSize: 128,
		CompressedSize:   section.InnerHeaderSize,
	}

	return append(h.Bytes(), make([]byte, section.InnerHeaderSize)...)
}

func TestDecompress(t *testing.T) {
	data := []byte{0x01, 'N', 'C', 'S', 0, 0, 0, 0, 4, 0, 0, 0, 4, 0, 0, 0, 0x48, 0x65, 0x6c, 0x6c}

	out, err := Decompress(data)
	require.NoError(t, err)
	require.Equal(t, []byte{0x48, 0x65, 0x6c, 0x6c}, out)

	_, err = Decompress(data[:10])
	require.ErrorIs(t, err, errs.ErrDataTooShort)
}

func TestParse(t *testing.T) {
	for name, data := range map[string][]byte{
		"container":    stored(invPayload()),
		"decompressed": invPayload(),
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse(data)
			require.NoError(t, err)
			require.Equal(t, []string{"inv"}, doc.TableNames())

			tbl, ok := doc.Table("inv")
			require.True(t, ok)
			require.Equal(t, []string{"inv_comp"}, tbl.Deps)
			require.Len(t, tbl.Records, 1)

			e := tbl.Records[0].Entries[0]
			require.Equal(t, "Alpha", e.Key)
			v, ok := e.Value.Get("field_1")
			require.True(t, ok)
			require.True(t, document.Leaf("67108871").Equal(v))
			require.Equal(t, []document.DepEntry{{DepTableName: "inv_comp", DepIndex: 1, Key: "Beta"}}, e.DepEntries)
		})
	}
}

func TestParse_Options(t *testing.T) {
	doc, err := Parse(stored(invPayload()), WithDecoderOptions(decoder.WithStrategy(format.StrategyDifferential)))
	require.NoError(t, err)

	tbl, ok := doc.Table("inv")
	require.True(t, ok)
	require.Len(t, tbl.Records, 1)
	require.Empty(t, tbl.Records[0].Entries[0].DepEntries, "differential entries have no dependency entries")

	cfg := config.Default()
	cfg.Decode.Strategy = "schema"
	doc, err = Parse(rarityPayload(), WithConfig(cfg))
	require.NoError(t, err)
	tbl, _ = doc.Table("rarity")
	require.Empty(t, tbl.Records, "the rarity string table is not a schema bitstream")

	cfg.Decode.Strategy = "guess"
	_, err = Parse(rarityPayload(), WithConfig(cfg))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	_, err = Parse(invPayload(), WithDecoderOptions(decoder.WithMaxNesting(0)))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("short"))
	require.ErrorIs(t, err, errs.ErrNoContentHeader)

	_, err = Parse(corrupt())
	require.ErrorIs(t, err, errs.ErrInvalidInnerMagic)
}

func TestParseAll(t *testing.T) {
	inv := stored(invPayload())
	pak := bytes.Join([][]byte{
		[]byte("pak header"),
		inv,
		[]byte("_NCS/ manifest collision"),
		stored(rarityPayload()),
		corrupt(),
		inv,
	}, nil)

	require.Len(t, Scan(pak), 4)

	doc, err := ParseAll(context.Background(), pak)
	require.ErrorIs(t, err, errs.ErrInvalidInnerMagic)
	require.Contains(t, err.Error(), "container at 0x")

	require.Equal(t, []string{"inv", "rarity"}, doc.TableNames())
	tbl, _ := doc.Table("inv")
	require.Len(t, tbl.Records, 1, "duplicate containers are decoded once")

	tbl, _ = doc.Table("rarity")
	require.Len(t, tbl.Records, 1)
	require.Equal(t, "Common", tbl.Records[0].Entries[0].Key)
}

func TestParseAll_Empty(t *testing.T) {
	doc, err := ParseAll(context.Background(), []byte("nothing to see"))
	require.NoError(t, err)
	require.Empty(t, doc.TableNames())
}

func TestExtractors(t *testing.T) {
	si := func(i string) document.Value {
		return document.Map(map[string]document.Value{
			"serialindex": document.Map(map[string]document.Value{"index": document.Leaf(i)}),
		})
	}

	a := document.NewAssembler()
	a.Add(&document.Table{
		Name: "parts",
		Records: []document.Record{{Entries: []document.Entry{{
			Key:   "Cat_5",
			Value: si("5"),
			DepEntries: []document.DepEntry{
				{DepTableName: "comp", Key: "PartA", Value: si("1")},
				{DepTableName: "comp", Key: "PartB", Value: si("int'2'")},
			},
		}}}},
	})
	doc := a.Document()

	require.Equal(t, []document.CategorizedPart{
		{Category: 5, Index: 1, Name: "PartA"},
		{Category: 5, Index: 2, Name: "PartB"},
	}, ExtractCategorizedParts(doc))
	require.Equal(t, map[uint32]string{5: "Cat_5"}, ExtractCategoryNames(doc))
	require.Equal(t, map[uint32]string{5: "Cat_5"}, ExtractAllEntryNames(doc))
	require.Len(t, ExtractSerialIndices(doc), 3)
	require.Empty(t, ExtractSharedParts(doc))
}

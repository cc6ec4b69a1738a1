package content

import (
	"testing"

	"github.com/arloliu/ncs/format"
	"github.com/stretchr/testify/require"
)

func TestParseEntrySection(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		form        format.EntryForm
		fieldCount  int
		stringCount int
	}{
		{"simple", []byte{0x01, 0x05, 0xc3}, format.EntrySimple, 3, 5},
		{"simple with zero fields falls through", []byte{0x01, 0x05, 0xc0}, format.EntryDefault, 1, -1},
		{"extended", []byte{0x20, 0x04, 0x01}, format.EntryExtended, 4, 0x20},
		{"direct", []byte{0x01, 0x03, 0x30}, format.EntryDirect, 3, -1},
		{"fallback", []byte{0x99, 0x00, 0x00, 0x00, 0xc4}, format.EntryFallback, 4, -1},
		{"fallback outside window", []byte{0x99, 0, 0, 0, 0, 0, 0, 0, 0xc4}, format.EntryDefault, 1, -1},
		{"default", []byte{0x00, 0x00, 0x00}, format.EntryDefault, 1, -1},
		{"truncated", []byte{0x01, 0x05}, format.EntryDefault, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, fc, sc := ParseEntrySection(tt.data, 0)
			require.Equal(t, tt.form, form)
			require.Equal(t, tt.fieldCount, fc)
			require.Equal(t, tt.stringCount, sc)
		})
	}
}

func TestFindStringTableStart(t *testing.T) {
	data := payload([]byte{0x01, 0x03, 0x30, 'x', 0x05}, cstrings("/Game/Loot", "tail"), filler(32))
	start, ok := FindStringTableStart(data, 0)
	require.True(t, ok)
	require.Equal(t, 5, start)

	_, ok = FindStringTableStart(filler(64), 0)
	require.False(t, ok)

	_, ok = FindStringTableStart(data, len(data))
	require.False(t, ok)
}

func TestFindControlSection(t *testing.T) {
	t.Run("marker before none", func(t *testing.T) {
		data := payload(cstrings("Common"), []byte{0x01, 0x00, 0x03, 0xe9}, cstrings("none"))
		require.Equal(t, 7, FindControlSection(data, 0))
	})

	t.Run("count byte before none", func(t *testing.T) {
		data := payload(cstrings("Common"), []byte{0x05, 0x00, 0x07}, cstrings("none"))
		require.Equal(t, 7, FindControlSection(data, 0))
	})

	t.Run("pattern scan", func(t *testing.T) {
		data := payload(cstrings("Common"), []byte{0x01, 0x00, 0x03, 0xe9}, cstrings("basegame"))
		require.Equal(t, 7, FindControlSection(data, 0))
	})

	t.Run("absent", func(t *testing.T) {
		require.Equal(t, -1, FindControlSection(cstrings("Common", "Rare"), 0))
		require.Equal(t, -1, FindControlSection(nil, 0))
	})
}

func TestFindBinaryOffset(t *testing.T) {
	data := payload(cstrings("aa", "bb", "cc"), []byte{0xff, 0x00})

	require.Equal(t, 6, FindBinaryOffset(data, 0, 2, -1))
	require.Equal(t, 0, FindBinaryOffset(data, 0, 0, -1))
	require.Equal(t, 9, FindBinaryOffset(data, 0, -1, -1))
	require.Equal(t, 9, FindBinaryOffset(data, 0, -1, 1))
	require.Equal(t, len(data), FindBinaryOffset(data, len(data), -1, -1))
}

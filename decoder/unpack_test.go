package decoder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnpack(t *testing.T) {
	tests := []struct {
		in     string
		want   []Unpacked
		packed bool
	}{
		{"123", []Unpacked{{Kind: UnpackedInt, Int: 123}}, false},
		{"1.5", []Unpacked{{Kind: UnpackedFloat, Float: 1.5}}, false},
		{"hello", []Unpacked{{Kind: UnpackedString, Str: "hello"}}, false},
		{"1airship", []Unpacked{{Kind: UnpackedInt, Int: 1}, {Kind: UnpackedString, Str: "airship"}}, true},
		{"12ships", []Unpacked{{Kind: UnpackedInt, Int: 12}, {Kind: UnpackedString, Str: "ships"}}, true},
		{"0.175128Session", []Unpacked{{Kind: UnpackedFloat, Float: 0.175128}, {Kind: UnpackedString, Str: "Session"}}, true},
		{"5true", []Unpacked{{Kind: UnpackedInt, Int: 5}, {Kind: UnpackedBool, Bool: true}}, true},
		{"0false", []Unpacked{{Kind: UnpackedInt, Int: 0}, {Kind: UnpackedBool}}, true},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, packed := Unpack(tt.in)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.packed, packed)
		})
	}
}

func TestUnpacked_String(t *testing.T) {
	require.Equal(t, "42", Unpacked{Kind: UnpackedInt, Int: 42}.String())
	require.Equal(t, "0.25", Unpacked{Kind: UnpackedFloat, Float: 0.25}.String())
	require.Equal(t, "true", Unpacked{Kind: UnpackedBool, Bool: true}.String())
	require.Equal(t, "word", Unpacked{Str: "word"}.String())
}

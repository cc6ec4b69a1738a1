package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayerEngines(t *testing.T) {
	word := []byte{0xb7, 0x75, 0x63, 0x62}

	require.Equal(t, uint32(0xb7756362), GetInnerEngine().Uint32(word))
	require.Equal(t, uint32(0x626375b7), GetOuterEngine().Uint32(word))
	require.Equal(t, binary.BigEndian, GetInnerEngine())
	require.Equal(t, binary.LittleEndian, GetOuterEngine())
}

func TestEngineAppend(t *testing.T) {
	buf := GetOuterEngine().AppendUint32(nil, 4)
	require.Equal(t, []byte{4, 0, 0, 0}, buf)

	buf = GetInnerEngine().AppendUint32(nil, 4)
	require.Equal(t, []byte{0, 0, 0, 4}, buf)
}

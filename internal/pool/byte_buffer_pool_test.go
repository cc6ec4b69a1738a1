package pool

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(4)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("hello"), bb.Bytes())
	require.Equal(t, 5, bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, cap(bb.B), 5)
}

func TestByteBuffer_ReadFrom(t *testing.T) {
	bb := NewByteBuffer(0)
	src := strings.Repeat("0123456789", 300)

	n, err := bb.ReadFrom(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, int64(len(src)), n)
	require.Equal(t, src, string(bb.Bytes()))
}

func TestByteBuffer_Clone(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.Write([]byte{1, 2, 3})

	clone := bb.Clone()
	bb.Reset()
	_, _ = bb.Write([]byte{9, 9, 9})

	require.Equal(t, []byte{1, 2, 3}, clone)
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(2)
	_, _ = bb.Write([]byte{1, 2})

	bb.Grow(100)
	require.GreaterOrEqual(t, cap(bb.B)-len(bb.B), 100)
	require.Equal(t, []byte{1, 2}, bb.Bytes())
}

func TestByteBufferPool(t *testing.T) {
	t.Run("returned buffers are empty", func(t *testing.T) {
		p := NewByteBufferPool(16, 64)

		bb := p.Get()
		_, _ = bb.Write([]byte("data"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(16, 64)

		bb := p.Get()
		_, _ = bb.Write(bytes.Repeat([]byte{1}, 128))
		p.Put(bb)

		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("default pools", func(t *testing.T) {
		block := GetBlockBuffer()
		require.GreaterOrEqual(t, cap(block.B), BlockBufferDefaultSize)
		PutBlockBuffer(block)

		stderr := GetStderrBuffer()
		require.Equal(t, 0, stderr.Len())
		PutStderrBuffer(stderr)
	})
}

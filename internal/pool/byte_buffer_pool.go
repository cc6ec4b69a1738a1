package pool

import (
	"io"
	"sync"
)

const (
	// BlockBufferDefaultSize matches one decompressed block.
	BlockBufferDefaultSize = 256 * 1024
	// BlockBufferMaxThreshold bounds buffers kept by the block pool.
	BlockBufferMaxThreshold = 4 * BlockBufferDefaultSize
	// StderrBufferDefaultSize is enough for a helper's error message.
	StderrBufferDefaultSize = 4 * 1024
	// StderrBufferMaxThreshold bounds buffers kept by the stderr pool.
	StderrBufferMaxThreshold = 64 * 1024
)

// ByteBuffer is a growable byte slice that implements io.Writer and io.ReaderFrom.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates an empty ByteBuffer with the given capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the buffered bytes. The slice is only valid until the buffer
// is reset or returned to its pool.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Grow ensures room for n more bytes without reallocating.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := cap(bb.B) / 4
	if growBy < n {
		growBy = n
	}

	buf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(buf, bb.B)
	bb.B = buf
}

// Write appends data to the buffer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ReadFrom appends everything read from r until io.EOF.
func (bb *ByteBuffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		bb.Grow(512)
		n, err := r.Read(bb.B[len(bb.B):cap(bb.B)])
		bb.B = bb.B[:len(bb.B)+n]
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Clone returns a copy of the buffered bytes that outlives the buffer.
func (bb *ByteBuffer) Clone() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// ByteBufferPool pools ByteBuffers and drops buffers that grew past
// maxThreshold so one oversized payload does not pin memory.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given initial capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	blockPool  = NewByteBufferPool(BlockBufferDefaultSize, BlockBufferMaxThreshold)
	stderrPool = NewByteBufferPool(StderrBufferDefaultSize, StderrBufferMaxThreshold)
)

// GetBlockBuffer retrieves a buffer sized for one decompressed block.
func GetBlockBuffer() *ByteBuffer {
	return blockPool.Get()
}

// PutBlockBuffer returns a buffer obtained from GetBlockBuffer.
func PutBlockBuffer(bb *ByteBuffer) {
	blockPool.Put(bb)
}

// GetStderrBuffer retrieves a small buffer for capturing helper diagnostics.
func GetStderrBuffer() *ByteBuffer {
	return stderrPool.Get()
}

// PutStderrBuffer returns a buffer obtained from GetStderrBuffer.
func PutStderrBuffer(bb *ByteBuffer) {
	stderrPool.Put(bb)
}

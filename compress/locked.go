package compress

import "sync"

// Locked serializes calls into a backend that is not safe for concurrent use.
type Locked struct {
	mu    sync.Mutex
	inner BlockDecompressor
}

var _ BlockDecompressor = (*Locked)(nil)

// NewLocked wraps inner with a mutex.
func NewLocked(inner BlockDecompressor) *Locked {
	return &Locked{inner: inner}
}

// DecompressBlock implements BlockDecompressor.
func (l *Locked) DecompressBlock(compressed []byte, expectedSize int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.inner.DecompressBlock(compressed, expectedSize)
}

// Name implements BlockDecompressor.
func (l *Locked) Name() string {
	return l.inner.Name()
}

// IsFullSupport implements BlockDecompressor.
func (l *Locked) IsFullSupport() bool {
	return l.inner.IsFullSupport()
}

// Unwrap returns the wrapped backend.
func (l *Locked) Unwrap() BlockDecompressor {
	return l.inner
}

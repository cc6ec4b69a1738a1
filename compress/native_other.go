//go:build !windows

package compress

import (
	"fmt"

	"github.com/arloliu/ncs/errs"
)

// Native is only available on Windows.
type Native struct{}

var _ BlockDecompressor = (*Native)(nil)

// NewNative returns errs.ErrUnsupportedBackend on this platform.
func NewNative(_ string) (*Native, error) {
	return nil, fmt.Errorf("%w: native backend requires windows", errs.ErrUnsupportedBackend)
}

// DecompressBlock implements BlockDecompressor.
func (n *Native) DecompressBlock(_ []byte, _ int) ([]byte, error) {
	return nil, errs.ErrUnsupportedBackend
}

// Name implements BlockDecompressor.
func (n *Native) Name() string {
	return "native"
}

// IsFullSupport implements BlockDecompressor.
func (n *Native) IsFullSupport() bool {
	return false
}

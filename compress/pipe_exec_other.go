//go:build !unix

package compress

import (
	"fmt"

	"github.com/arloliu/ncs/errs"
)

// PipeExec is only available on Unix platforms.
type PipeExec struct{}

var _ BlockDecompressor = (*PipeExec)(nil)

// NewPipeExec returns errs.ErrUnsupportedBackend on this platform.
func NewPipeExec(_, _ string) (*PipeExec, error) {
	return nil, fmt.Errorf("%w: pipe-exec requires named pipes", errs.ErrUnsupportedBackend)
}

// DecompressBlock implements BlockDecompressor.
func (p *PipeExec) DecompressBlock(_ []byte, _ int) ([]byte, error) {
	return nil, errs.ErrUnsupportedBackend
}

// Name implements BlockDecompressor.
func (p *PipeExec) Name() string {
	return "pipe-exec"
}

// IsFullSupport implements BlockDecompressor.
func (p *PipeExec) IsFullSupport() bool {
	return false
}

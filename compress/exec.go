package compress

import (
	"bytes"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/arloliu/ncs/errs"
	"github.com/arloliu/ncs/internal/pool"
)

// Exec decompresses each block by running `<helper> decompress <size>`,
// writing the block to the helper's stdin and reading stdout.
//
// Each call starts its own process, so Exec is safe for concurrent use.
type Exec struct {
	helper string
}

var _ BlockDecompressor = (*Exec)(nil)

// NewExec creates an exec backend for helper.
func NewExec(helper string) *Exec {
	return &Exec{helper: helper}
}

// DecompressBlock implements BlockDecompressor.
func (e *Exec) DecompressBlock(compressed []byte, expectedSize int) ([]byte, error) {
	stdout := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(stdout)
	stderr := pool.GetStderrBuffer()
	defer pool.PutStderrBuffer(stderr)

	stdout.Grow(expectedSize)

	cmd := exec.Command(e.helper, "decompress", strconv.Itoa(expectedSize)) //nolint:gosec
	cmd.Stdin = bytes.NewReader(compressed)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, helperError(e.Name(), err, stderr.Bytes())
	}

	return checkSize(stdout.Clone(), expectedSize)
}

// Name implements BlockDecompressor.
func (e *Exec) Name() string {
	return "exec"
}

// IsFullSupport implements BlockDecompressor.
func (e *Exec) IsFullSupport() bool {
	return true
}

// Helper returns the helper executable path.
func (e *Exec) Helper() string {
	return e.helper
}

// helperError builds a backend error from a failed helper run, carrying the
// helper's stderr when it wrote any.
func helperError(backend string, err error, stderr []byte) error {
	msg := strings.TrimSpace(string(stderr))

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg == "" {
			msg = "helper exited with status " + strconv.Itoa(exitErr.ExitCode())
		}

		return errs.NewBackendError(backend, msg, nil)
	}

	if msg == "" {
		msg = "failed to run helper"
	}

	return errs.NewBackendError(backend, msg, err)
}

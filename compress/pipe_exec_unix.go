//go:build unix

package compress

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/arloliu/ncs/errs"
	"github.com/arloliu/ncs/internal/pool"
	"golang.org/x/sys/unix"
)

const pipeUnblockInterval = 10 * time.Millisecond

// PipeExec decompresses each block by running
// `<helper> decompress <size> <in_pipe> <out_pipe>` and exchanging data over
// two named pipes created for the call.
//
// Each call uses its own pipes and process, so PipeExec is safe for
// concurrent use.
type PipeExec struct {
	helper string
	dir    string
}

var _ BlockDecompressor = (*PipeExec)(nil)

// NewPipeExec creates a pipe-exec backend. dir is where the per-call pipe
// directories are created; empty means os.TempDir().
func NewPipeExec(helper, dir string) (*PipeExec, error) {
	return &PipeExec{helper: helper, dir: dir}, nil
}

// DecompressBlock implements BlockDecompressor.
func (p *PipeExec) DecompressBlock(compressed []byte, expectedSize int) ([]byte, error) {
	tmp, err := os.MkdirTemp(p.dir, "ncs-pipe-")
	if err != nil {
		return nil, errs.NewBackendError(p.Name(), "failed to create pipe directory", err)
	}
	defer os.RemoveAll(tmp)

	inPath := filepath.Join(tmp, "in")
	outPath := filepath.Join(tmp, "out")
	if err := unix.Mkfifo(inPath, 0o600); err != nil {
		return nil, errs.NewBackendError(p.Name(), "failed to create input pipe", err)
	}
	if err := unix.Mkfifo(outPath, 0o600); err != nil {
		return nil, errs.NewBackendError(p.Name(), "failed to create output pipe", err)
	}

	stderr := pool.GetStderrBuffer()
	defer pool.PutStderrBuffer(stderr)
	out := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(out)
	out.Grow(expectedSize)

	cmd := exec.Command(p.helper, "decompress", strconv.Itoa(expectedSize), inPath, outPath) //nolint:gosec
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		return nil, errs.NewBackendError(p.Name(), "failed to start helper", err)
	}

	var (
		wg       sync.WaitGroup
		writeErr error
		readErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		writeErr = writePipe(inPath, compressed)
	}()
	go func() {
		defer wg.Done()
		readErr = readPipe(outPath, out)
	}()

	waitErr := cmd.Wait()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	releasePipes(inPath, outPath, done)

	if waitErr != nil {
		return nil, helperError(p.Name(), waitErr, stderr.Bytes())
	}
	if readErr != nil {
		return nil, errs.NewBackendError(p.Name(), "failed to read output pipe", readErr)
	}
	if writeErr != nil && !errors.Is(writeErr, syscall.EPIPE) {
		return nil, errs.NewBackendError(p.Name(), "failed to write input pipe", writeErr)
	}

	return checkSize(out.Clone(), expectedSize)
}

// Name implements BlockDecompressor.
func (p *PipeExec) Name() string {
	return "pipe-exec"
}

// IsFullSupport implements BlockDecompressor.
func (p *PipeExec) IsFullSupport() bool {
	return true
}

func writePipe(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}

	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	return err
}

func readPipe(path string, out *pool.ByteBuffer) error {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = out.ReadFrom(f)

	return err
}

// releasePipes unblocks pipe opens left pending by a helper that exited
// without opening its ends. Opening the opposite end lets a pending open
// complete; the writer then sees EPIPE and the reader sees EOF. Repeats until
// both goroutines have returned.
func releasePipes(inPath, outPath string, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
		}

		if fd, err := unix.Open(inPath, unix.O_RDONLY|unix.O_NONBLOCK, 0); err == nil {
			_ = unix.Close(fd)
		}
		// ENXIO means nobody is waiting to read.
		if fd, err := unix.Open(outPath, unix.O_WRONLY|unix.O_NONBLOCK, 0); err == nil {
			_ = unix.Close(fd)
		}

		select {
		case <-done:
			return
		case <-time.After(pipeUnblockInterval):
		}
	}
}

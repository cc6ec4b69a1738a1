//go:build windows

package compress

import (
	"runtime"
	"unsafe"

	"github.com/arloliu/ncs/errs"
	"golang.org/x/sys/windows"
)

const nativeEntryPoint = "OodleLZ_Decompress"

// Native calls the vendor decompressor exported by a dynamically loaded
// library. The library is not reentrant; New wraps Native in Locked.
type Native struct {
	path string
	proc *windows.LazyProc
}

var _ BlockDecompressor = (*Native)(nil)

// NewNative loads path and resolves the decompression entry point.
func NewNative(path string) (*Native, error) {
	proc := windows.NewLazyDLL(path).NewProc(nativeEntryPoint)
	if err := proc.Find(); err != nil {
		return nil, errs.NewBackendError("native", "failed to load "+path, err)
	}

	return &Native{path: path, proc: proc}, nil
}

// DecompressBlock implements BlockDecompressor.
func (n *Native) DecompressBlock(compressed []byte, expectedSize int) ([]byte, error) {
	if expectedSize == 0 {
		return []byte{}, nil
	}
	if len(compressed) == 0 {
		return nil, errs.NewDecompressionSize(expectedSize, 0)
	}

	out := make([]byte, expectedSize)
	r1, _, _ := n.proc.Call(
		uintptr(unsafe.Pointer(&compressed[0])),
		uintptr(len(compressed)),
		uintptr(unsafe.Pointer(&out[0])),
		uintptr(expectedSize),
		1, // fuzz safe
		0, // check CRC
		0, // verbosity
		0, 0, 0, 0, 0, 0, 0,
	)
	runtime.KeepAlive(compressed)

	got := int(r1)
	if got < 0 {
		return nil, errs.NewBackendError(n.Name(), "decompression failed", nil)
	}

	return checkSize(out[:min(got, expectedSize)], expectedSize)
}

// Name implements BlockDecompressor.
func (n *Native) Name() string {
	return "native"
}

// IsFullSupport implements BlockDecompressor.
func (n *Native) IsFullSupport() bool {
	return true
}

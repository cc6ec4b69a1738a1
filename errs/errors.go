// Package errs defines the error values returned by the ncs packages.
//
// Fatal container errors are exposed both as sentinels, for errors.Is checks,
// and as typed errors carrying the offending sizes, for errors.As checks:
//
//	_, err := blob.Decompress(data)
//	var short *errs.DataTooShortError
//	if errors.As(err, &short) {
//	    log.Printf("need %d bytes, got %d", short.Needed, short.Actual)
//	}
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrDataTooShort indicates a header or region is truncated.
	ErrDataTooShort = errors.New("data too short")
	// ErrInvalidNcsMagic indicates bytes 1..3 of a container are not "NCS".
	ErrInvalidNcsMagic = errors.New("invalid NCS magic")
	// ErrInvalidVersion indicates an outer header version other than 1.
	ErrInvalidVersion = errors.New("invalid NCS version")
	// ErrInvalidInnerMagic indicates the compressed region does not start with the inner magic.
	ErrInvalidInnerMagic = errors.New("invalid inner header magic")
	// ErrInvalidManifestMagic indicates a manifest chunk does not start with "_NCS/".
	ErrInvalidManifestMagic = errors.New("invalid manifest magic")
	// ErrDecompressionSize indicates a backend produced the wrong number of bytes.
	ErrDecompressionSize = errors.New("decompressed size mismatch")
	// ErrInvalidBlockTable indicates the multi-block size table does not fit the region.
	ErrInvalidBlockTable = errors.New("invalid block table")

	// ErrBackend is the parent of every backend-specific failure.
	ErrBackend = errors.New("block decompressor failure")
	// ErrUnsupportedBackend indicates a backend that cannot run on this platform or configuration.
	ErrUnsupportedBackend = errors.New("unsupported decompressor backend")
	// ErrVendorBlock indicates a block in the vendor LZ format, which only the
	// native, exec and pipe-exec backends can decode.
	ErrVendorBlock = errors.New("vendor LZ block needs a native, exec or pipe-exec backend")

	// ErrInsufficientBits indicates the bit cursor ran past the end of its buffer.
	ErrInsufficientBits = errors.New("insufficient bits")
	// ErrIndexOutOfRange indicates a string index beyond the string table.
	ErrIndexOutOfRange = errors.New("string index out of range")
	// ErrNestingTooDeep indicates nested records exceeded the configured depth.
	ErrNestingTooDeep = errors.New("nesting too deep")
	// ErrNoContentHeader indicates the decompressed payload has no recognizable content header.
	ErrNoContentHeader = errors.New("no content header")

	// ErrInvalidConfig indicates a configuration value failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// DataTooShortError reports how many bytes were needed and how many were present.
type DataTooShortError struct {
	Needed int
	Actual int
}

func (e *DataTooShortError) Error() string {
	return fmt.Sprintf("%s: needed %d bytes, got %d", ErrDataTooShort, e.Needed, e.Actual)
}

func (e *DataTooShortError) Unwrap() error {
	return ErrDataTooShort
}

// NewDataTooShort returns a *DataTooShortError.
func NewDataTooShort(needed, actual int) error {
	return &DataTooShortError{Needed: needed, Actual: actual}
}

// InvalidNcsMagicError carries the three bytes found where "NCS" was expected.
type InvalidNcsMagicError struct {
	Got [3]byte
}

func (e *InvalidNcsMagicError) Error() string {
	return fmt.Sprintf("%s: got %02x %02x %02x", ErrInvalidNcsMagic, e.Got[0], e.Got[1], e.Got[2])
}

func (e *InvalidNcsMagicError) Unwrap() error {
	return ErrInvalidNcsMagic
}

// InvalidInnerMagicError carries the big-endian word found at offset 0 of the compressed region.
type InvalidInnerMagicError struct {
	Got uint32
}

func (e *InvalidInnerMagicError) Error() string {
	return fmt.Sprintf("%s: got 0x%08x", ErrInvalidInnerMagic, e.Got)
}

func (e *InvalidInnerMagicError) Unwrap() error {
	return ErrInvalidInnerMagic
}

// InvalidManifestMagicError carries the five bytes found where "_NCS/" was expected.
type InvalidManifestMagicError struct {
	Got [5]byte
}

func (e *InvalidManifestMagicError) Error() string {
	return fmt.Sprintf("%s: got %q", ErrInvalidManifestMagic, e.Got[:])
}

func (e *InvalidManifestMagicError) Unwrap() error {
	return ErrInvalidManifestMagic
}

// DecompressionSizeError reports an output length that differs from the expected size.
type DecompressionSizeError struct {
	Expected int
	Actual   int
}

func (e *DecompressionSizeError) Error() string {
	return fmt.Sprintf("%s: expected %d bytes, got %d", ErrDecompressionSize, e.Expected, e.Actual)
}

func (e *DecompressionSizeError) Unwrap() error {
	return ErrDecompressionSize
}

// NewDecompressionSize returns a *DecompressionSizeError.
func NewDecompressionSize(expected, actual int) error {
	return &DecompressionSizeError{Expected: expected, Actual: actual}
}

// BackendError wraps a failure inside a block decompressor backend, such as a
// helper process that could not be spawned or exited non-zero.
type BackendError struct {
	Backend string
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s backend: %s: %v", e.Backend, e.Message, e.Err)
	}

	return fmt.Sprintf("%s backend: %s", e.Backend, e.Message)
}

// Is reports ErrBackend as well as any wrapped cause.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError returns a *BackendError. err may be nil.
func NewBackendError(backend, message string, err error) error {
	return &BackendError{Backend: backend, Message: message, Err: err}
}

// BlockError annotates a failure with the index of the block inside a
// multi-block payload.
type BlockError struct {
	Index int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d: %v", e.Index, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

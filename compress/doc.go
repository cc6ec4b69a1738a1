// Package compress provides the block decompressor backends used to rebuild
// NCS payloads.
//
// Every backend implements BlockDecompressor:
//
//	type BlockDecompressor interface {
//	    DecompressBlock(compressed []byte, expectedSize int) ([]byte, error)
//	    Name() string
//	    IsFullSupport() bool
//	}
//
// DecompressBlock must return exactly expectedSize bytes; any other length is
// an *errs.DecompressionSizeError. Backends never fall back to one another
// and never retry.
//
// # Backends
//
// **Bundled** (format.BackendBundled) runs in process and needs no external
// files. The block algorithm is selected with format.BlockCodec (LZ4 by
// default, S2, Zstd, or stored blocks). It does not implement the vendor LZ
// format that shipped containers use, so IsFullSupport reports false and a
// vendor block fails with errs.ErrVendorBlock. Use it for re-packed or test
// payloads; decoding real containers needs one of the other backends.
//
// **Native** (format.BackendNative) loads the vendor library at runtime and
// calls OodleLZ_Decompress. Windows only; other platforms get
// errs.ErrUnsupportedBackend. The library is not reentrant, so the backend is
// returned wrapped in Locked.
//
// **Exec** (format.BackendExec) runs `<helper> decompress <size>` per block,
// writing the compressed block to the helper's stdin and reading the result
// from its stdout.
//
// **Pipe exec** (format.BackendPipeExec) runs
// `<helper> decompress <size> <in_pipe> <out_pipe>` with two named pipes in
// place of stdio. This is the bridge for helpers running under an emulation
// layer whose console redirection corrupts binary streams. Unix only.
//
// # Selection
//
// Backends are chosen explicitly:
//
//	d, err := compress.New(compress.Config{
//	    Backend: format.BackendExec,
//	    Helper:  "/usr/local/bin/oodle-helper",
//	})
//
// Timeouts for helper processes are the caller's policy; the backends block
// until the helper exits.
package compress

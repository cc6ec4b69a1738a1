//go:build unix

package compress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/ncs/errs"
	"github.com/stretchr/testify/require"
)

// writeHelper writes an executable shell script standing in for the
// decompression helper.
func writeHelper(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "helper.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o700))

	return path
}

func TestExec(t *testing.T) {
	t.Run("echo helper", func(t *testing.T) {
		helper := writeHelper(t, `[ "$1" = decompress ] || exit 9
exec cat`)
		d := NewExec(helper)
		require.Equal(t, helper, d.Helper())

		got, err := d.DecompressBlock([]byte("Hello, world"), 12)
		require.NoError(t, err)
		require.Equal(t, []byte("Hello, world"), got)
	})

	t.Run("size argument", func(t *testing.T) {
		helper := writeHelper(t, `printf '%03d' "$2"`)

		got, err := NewExec(helper).DecompressBlock(nil, 3)
		require.NoError(t, err)
		require.Equal(t, []byte("003"), got)
	})

	t.Run("size mismatch", func(t *testing.T) {
		helper := writeHelper(t, `exec cat`)

		_, err := NewExec(helper).DecompressBlock([]byte("abc"), 4)
		var sizeErr *errs.DecompressionSizeError
		require.ErrorAs(t, err, &sizeErr)
		require.Equal(t, 4, sizeErr.Expected)
		require.Equal(t, 3, sizeErr.Actual)
	})

	t.Run("non-zero exit carries stderr", func(t *testing.T) {
		helper := writeHelper(t, `echo "corrupt block" >&2
exit 3`)

		_, err := NewExec(helper).DecompressBlock([]byte("abc"), 3)
		require.ErrorIs(t, err, errs.ErrBackend)
		require.Contains(t, err.Error(), "corrupt block")
	})

	t.Run("non-zero exit without stderr", func(t *testing.T) {
		helper := writeHelper(t, `exit 4`)

		_, err := NewExec(helper).DecompressBlock([]byte("abc"), 3)
		require.ErrorIs(t, err, errs.ErrBackend)
		require.Contains(t, err.Error(), "status 4")
	})

	t.Run("missing helper", func(t *testing.T) {
		_, err := NewExec(filepath.Join(t.TempDir(), "missing")).DecompressBlock([]byte("abc"), 3)
		require.ErrorIs(t, err, errs.ErrBackend)
	})
}

func TestPipeExec(t *testing.T) {
	t.Run("copies input pipe to output pipe", func(t *testing.T) {
		helper := writeHelper(t, `[ "$1" = decompress ] || exit 9
cat "$3" > "$4"`)
		d, err := NewPipeExec(helper, t.TempDir())
		require.NoError(t, err)
		require.Equal(t, "pipe-exec", d.Name())

		data := testPayload(300 * 1024)
		got, err := d.DecompressBlock(data, len(data))
		require.NoError(t, err)
		require.Equal(t, data, got)
	})

	t.Run("helper exits without opening pipes", func(t *testing.T) {
		helper := writeHelper(t, `echo "no license" >&2
exit 2`)
		d, err := NewPipeExec(helper, t.TempDir())
		require.NoError(t, err)

		_, err = d.DecompressBlock([]byte("abc"), 3)
		require.ErrorIs(t, err, errs.ErrBackend)
		require.Contains(t, err.Error(), "no license")
	})

	t.Run("helper ignores input", func(t *testing.T) {
		helper := writeHelper(t, `printf 'abc' > "$4"`)
		d, err := NewPipeExec(helper, t.TempDir())
		require.NoError(t, err)

		got, err := d.DecompressBlock([]byte("ignored"), 3)
		require.NoError(t, err)
		require.Equal(t, []byte("abc"), got)
	})

	t.Run("pipe directory is removed", func(t *testing.T) {
		dir := t.TempDir()
		helper := writeHelper(t, `cat "$3" > "$4"`)
		d, err := NewPipeExec(helper, dir)
		require.NoError(t, err)

		_, err = d.DecompressBlock([]byte("xyz"), 3)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Empty(t, entries)
	})
}

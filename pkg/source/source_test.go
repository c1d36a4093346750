// pkg/source/source_test.go

package source

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SparseBuf/pkg/sparsebuf"
)

func writeFile(t *testing.T, data string) string {
	fn := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, os.WriteFile(fn, []byte(data), 0644))
	return fn
}

func TestOpenFile(t *testing.T) {
	fn := writeFile(t, "first\nsecond\n")
	for _, uri := range []string{fn, "file://" + fn} {
		src, err := Open(uri, nil)
		require.NoError(t, err)
		assert.Equal(t, uint64(13), src.Size)
		assert.Equal(t, uri, src.String())

		buf, err := sparsebuf.New(src, src.Size, nil)
		require.NoError(t, err)
		lines, err := buf.ReadLines(5)
		require.NoError(t, err)
		assert.Equal(t, []string{"first\n", "second\n"}, lines)
		require.NoError(t, buf.Close())
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"), nil)
	assert.True(t, os.IsNotExist(err))

	_, err = Open(t.TempDir(), nil)
	assert.Error(t, err)

	_, err = Open("sftp://example.com", nil)
	assert.Error(t, err)

	_, err = Open("sftp://%zz/path", nil)
	assert.Error(t, err)
}

func TestOpenLimited(t *testing.T) {
	fn := writeFile(t, "0123456789")
	opts := DefaultOptions()
	opts.ReadLimit = 1 << 20
	src, err := Open(fn, opts)
	require.NoError(t, err)
	defer src.Close()
	_, ok := src.ReadSeekCloser.(*limitedReader)
	require.True(t, ok)

	_, err = src.Seek(4, io.SeekStart)
	require.NoError(t, err)
	data, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, "456789", string(data))
}

func TestNewLimitedDisabled(t *testing.T) {
	f, err := os.Open(writeFile(t, "x"))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, io.ReadSeekCloser(f), NewLimited(f, 0))
}

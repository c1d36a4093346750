// pkg/chunk/chunk_test.go

package chunk

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errReader struct {
	data []byte
	err  error
}

func (r *errReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestChunkFill(t *testing.T) {
	c := NewChunk(8, 4)
	require.NoError(t, c.Fill(bytes.NewReader([]byte("abcdef"))))
	assert.Equal(t, 4, c.Size)
	assert.True(t, c.Full())
	assert.Equal(t, []byte("abcd"), c.Data())
	assert.Equal(t, uint64(12), c.End())
}

func TestChunkFillShort(t *testing.T) {
	c := NewChunk(0, 8)
	require.NoError(t, c.Fill(bytes.NewReader([]byte("xyz"))))
	assert.Equal(t, 3, c.Size)
	assert.False(t, c.Full())
	assert.Equal(t, []byte("xyz"), c.Data())
	assert.Equal(t, 8, len(c.Buf))

	c = NewChunk(0, 8)
	require.NoError(t, c.Fill(bytes.NewReader(nil)))
	assert.Equal(t, 0, c.Size)
	assert.Empty(t, c.Data())
}

func TestChunkFillError(t *testing.T) {
	boom := errors.New("boom")
	c := NewChunk(0, 8)
	err := c.Fill(&errReader{data: []byte("ab"), err: boom})
	assert.Equal(t, boom, err)
	assert.Equal(t, 2, c.Size)

	c = NewChunk(0, 8)
	assert.NoError(t, c.Fill(&errReader{data: []byte("ab"), err: io.EOF}))
}

func TestChunkString(t *testing.T) {
	c := NewChunk(4, 4)
	require.NoError(t, c.Fill(bytes.NewReader([]byte("ab"))))
	assert.Equal(t, `start: 4, size: 2, buf: "ab"...`, c.String())
}

func TestNewChunkPanics(t *testing.T) {
	assert.Panics(t, func() { NewChunk(0, 0) })
}

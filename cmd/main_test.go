// cmd/main_test.go

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SparseBuf/pkg/sparsebuf"
)

func newBuffer(t *testing.T, data string) *sparsebuf.Buffer {
	conf := sparsebuf.DefaultConfig()
	conf.ChunkSize = 4
	conf.LineSeekSize = 3
	b, err := sparsebuf.New(strings.NewReader(data), uint64(len(data)), conf)
	require.NoError(t, err)
	return b
}

func TestPrintLines(t *testing.T) {
	var out bytes.Buffer
	n, err := printLines(newBuffer(t, "a\nbb\nccc"), 10, false, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "a\nbb\nccc", out.String())

	out.Reset()
	n, err = printLines(newBuffer(t, "a\nbb\nccc"), 2, false, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "a\nbb\n", out.String())
}

func TestPrintLinesInvalid(t *testing.T) {
	data := "good\n\xff\nfine\n"
	var out bytes.Buffer
	n, err := printLines(newBuffer(t, data), 10, false, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "good\nfine\n", out.String())

	out.Reset()
	n, err = printLines(newBuffer(t, data), 10, true, &out)
	var ee *sparsebuf.EncodingError
	assert.ErrorAs(t, err, &ee)
	assert.Equal(t, 1, n)
}

func TestScanLines(t *testing.T) {
	data := strings.Repeat("line\n", 10) + "\xfe\xff\n" + "last"
	var positions []uint64
	r, err := scanLines(newBuffer(t, data), 4, func(pos uint64) {
		positions = append(positions, pos)
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), r.lines)
	assert.Equal(t, uint64(1), r.invalid)
	assert.Equal(t, 5, r.longest)
	assert.Equal(t, uint64(len(data)), positions[len(positions)-1])

	_, err = scanLines(newBuffer(t, data), 0, func(uint64) {})
	assert.Error(t, err)
}

func TestHeadCommand(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, os.WriteFile(fn, []byte("1\n2\n3\n4\n"), 0644))

	out := captureStdout(t, func() {
		require.NoError(t, newApp().Run([]string{"sparsebuf", "-q", "head", "-n", "2", "--chunk-size", "3", fn}))
	})
	assert.Equal(t, "1\n2\n", out)

	out = captureStdout(t, func() {
		require.NoError(t, newApp().Run([]string{"sparsebuf", "-q", "cat", "-o", "2", "-l", "3", fn}))
	})
	assert.Equal(t, "2\n3", out)

	out = captureStdout(t, func() {
		require.NoError(t, newApp().Run([]string{"sparsebuf", "-q", "lines", "-o", "3", "--align", "-n", "5", fn}))
	})
	assert.Equal(t, "3\n4\n", out)

	err := newApp().Run([]string{"sparsebuf", "-q", "head", "--cache-size", "lots", fn})
	assert.Error(t, err)
	err = newApp().Run([]string{"sparsebuf", "-q", "head"})
	assert.Error(t, err)
}

func captureStdout(t *testing.T, fn func()) string {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		done <- string(data)
	}()
	fn()
	os.Stdout = stdout
	_ = w.Close()
	return <-done
}

// pkg/sparsebuf/buffer.go

// Package sparsebuf implements a random access, line oriented reader on top of
// a seekable source. The source is split into aligned chunks which are fetched
// on demand and kept in a chunk.Cache, so a region is read from the source at
// most once (unless a cache capacity is configured).
package sparsebuf

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"SparseBuf/pkg/chunk"
	"SparseBuf/pkg/utils"
)

var logger = utils.GetLogger("sparsebuf")

// Buffer is a session over one source. It is not safe for concurrent use:
// callers sharing a Buffer must guard every call with the same lock.
type Buffer struct {
	id     string
	conf   Config
	pos    uint64
	end    uint64
	source io.ReadSeeker
	chunks *chunk.Cache
	log    *logrus.Entry

	fetches uint64
	hits    uint64
}

// Stats is a snapshot of the buffer counters.
type Stats struct {
	Session       string
	Pos           uint64
	End           uint64
	ChunkSize     int
	Fetches       uint64 // chunks read from the source
	Hits          uint64 // chunk lookups served by the cache
	Evictions     uint64
	Resident      int
	ResidentBytes int64
}

// New creates a buffer over src, whose length is fixed to length bytes. A nil
// conf uses DefaultConfig.
func New(src io.ReadSeeker, length uint64, conf *Config) (*Buffer, error) {
	if conf == nil {
		conf = DefaultConfig()
	}
	if err := conf.Check(); err != nil {
		return nil, err
	}
	id := uuid.New().String()
	b := &Buffer{
		id:     id,
		conf:   *conf,
		end:    length,
		source: src,
		chunks: chunk.NewCache(conf.ChunkSize, conf.CacheSize),
		log:    logger.WithField("session", id[:8]),
	}
	b.log.Debugf("new buffer, length: %d, chunk size: %d", length, conf.ChunkSize)
	return b, nil
}

func (b *Buffer) fetchChunk(aligned uint64) error {
	if b.chunks.Contains(aligned) {
		b.hits++
		return nil
	}
	if _, err := b.source.Seek(int64(aligned), io.SeekStart); err != nil {
		return &SourceIOError{Op: "seek", Offset: aligned, Err: err}
	}
	c := chunk.NewChunk(aligned, b.conf.ChunkSize)
	if err := c.Fill(b.source); err != nil {
		return &SourceIOError{Op: "read", Offset: aligned, Err: err}
	}
	b.fetches++
	b.log.Debugf("fetch chunk %d, size: %d", aligned, c.Size)
	return b.chunks.Insert(c)
}

// span returns the first and last aligned offsets overlapping
// [start, start+length), clipped to the end of the source.
func (b *Buffer) span(start uint64, length int) (first, last uint64, ok bool) {
	if length <= 0 || start >= b.end {
		return 0, 0, false
	}
	stop := start + uint64(length)
	if stop > b.end || stop < start {
		stop = b.end
	}
	return b.chunks.Align(start), b.chunks.Align(stop - 1), true
}

func (b *Buffer) fetchChunks(start uint64, length int) error {
	first, last, ok := b.span(start, length)
	if !ok {
		return nil
	}
	size := uint64(b.conf.ChunkSize)
	for off := first; off <= last; off += size {
		if err := b.fetchChunk(off); err != nil {
			return err
		}
	}
	return nil
}

func (b *Buffer) readAt(p []byte, off uint64) (int, error) {
	first, last, ok := b.span(off, len(p))
	if !ok {
		return 0, nil
	}
	if err := b.fetchChunks(off, len(p)); err != nil {
		return 0, err
	}

	size := uint64(b.conf.ChunkSize)
	var n int
	var err error
	next, src := first, off
	b.chunks.Range(first, last, func(c *chunk.Chunk) bool {
		if c.Start != next {
			err = errors.Wrapf(ErrChunkMissing, "offset %d", next)
			return false
		}
		if src < c.Start || src-c.Start >= uint64(c.Size) {
			// the source ended before the length it was opened with
			return false
		}
		inChunk := src - c.Start
		copied := copy(p[n:], c.Data()[inChunk:])
		n += copied
		src += uint64(copied)
		next += size
		return n < len(p)
	})
	if err == nil && n < len(p) && src < b.end && next <= last && !b.chunks.Contains(next) {
		err = errors.Wrapf(ErrChunkMissing, "offset %d", next)
	}
	b.chunks.Shrink(first, last)
	return n, err
}

// Read fills p starting at the cursor and advances the cursor by the number of
// bytes copied. Fewer bytes than len(p) are returned only at the end of the
// source, where Read returns 0 and a nil error.
func (b *Buffer) Read(p []byte) (int, error) {
	n, err := b.readAt(p, b.pos)
	b.pos += uint64(n)
	return n, err
}

// ReadAt implements io.ReaderAt. It shares the chunk cache with Read but
// leaves the cursor alone.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}
	n, err := b.readAt(p, uint64(off))
	if err == nil && n < len(p) {
		err = io.EOF
	}
	return n, err
}

// ReadUntil appends bytes to buf up to and including delim, scanning the
// source in LineSeekSize windows. It returns the number of bytes appended,
// not counting the delimiter. The cursor is left one past the delimiter, or
// at the end of the source when no delimiter was found. On error, buf and the
// cursor are restored so the call can be retried.
func (b *Buffer) ReadUntil(delim byte, buf *[]byte) (int, error) {
	start := b.pos
	mark := len(*buf)
	window := make([]byte, b.conf.LineSeekSize)
	total := 0
	found := false
	for {
		n, err := b.Read(window)
		if err != nil {
			b.pos = start
			*buf = (*buf)[:mark]
			return 0, err
		}
		if i := bytes.IndexByte(window[:n], delim); i >= 0 {
			total += i
			*buf = append(*buf, window[:i+1]...)
			found = true
			break
		}
		total += n
		*buf = append(*buf, window[:n]...)
		if n < len(window) {
			break
		}
	}

	b.pos = start + uint64(total)
	if found {
		b.pos++
	}
	return total, nil
}

// ReadLines returns up to num lines, each with its trailing delimiter except
// possibly the last line of the source. Fewer lines are returned only when
// the source is exhausted. A line that is not valid UTF-8 stops the call with
// an *EncodingError; the lines read before it are returned as well, and the
// next call continues after the bad line.
func (b *Buffer) ReadLines(num int) ([]string, error) {
	var lines []string
	for i := 0; i < num; i++ {
		var line []byte
		off := b.pos
		if _, err := b.ReadUntil(b.conf.Delimiter, &line); err != nil {
			return lines, err
		}
		if len(line) == 0 {
			break
		}
		if !utf8.Valid(line) {
			return lines, &EncodingError{Offset: off, Len: len(line)}
		}
		lines = append(lines, string(line))
	}
	return lines, nil
}

// Seek moves the cursor. Seeking past the end is allowed; reads there return
// no bytes. The cache is indexed by absolute offset and stays valid.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(b.end)
	default:
		return int64(b.pos), errors.Errorf("invalid whence %d", whence)
	}
	abs := base + offset
	if abs < 0 {
		return int64(b.pos), errors.Wrapf(ErrNegativeOffset, "seek to %d", abs)
	}
	b.pos = uint64(abs)
	return abs, nil
}

// Pos returns the cursor.
func (b *Buffer) Pos() uint64 {
	return b.pos
}

// Len returns the source length given to New.
func (b *Buffer) Len() uint64 {
	return b.end
}

func (b *Buffer) Stats() Stats {
	return Stats{
		Session:       b.id,
		Pos:           b.pos,
		End:           b.end,
		ChunkSize:     b.conf.ChunkSize,
		Fetches:       b.fetches,
		Hits:          b.hits,
		Evictions:     b.chunks.Evicted(),
		Resident:      b.chunks.Len(),
		ResidentBytes: b.chunks.Used(),
	}
}

// Close closes the source if it is an io.Closer.
func (b *Buffer) Close() error {
	if c, ok := b.source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (b *Buffer) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pos: %d\n", b.pos)
	b.chunks.Range(0, b.end, func(c *chunk.Chunk) bool {
		fmt.Fprintf(&sb, "%s\n", c)
		return true
	})
	sb.WriteString("===")
	return sb.String()
}

// pkg/chunk/chunk.go

package chunk

import (
	"fmt"
	"io"
)

// Chunk is one aligned window of a source. Buf always has the full chunk
// capacity, only the first Size bytes are valid.
type Chunk struct {
	Start uint64
	Size  int
	Buf   []byte
}

// NewChunk allocates a chunk starting at start with capacity bytes of storage.
func NewChunk(start uint64, capacity int) *Chunk {
	if capacity <= 0 {
		panic("capacity of chunk should > 0")
	}
	return &Chunk{Start: start, Buf: make([]byte, capacity)}
}

// Data returns the valid bytes of the chunk.
func (c *Chunk) Data() []byte {
	return c.Buf[:c.Size]
}

// End returns the offset one past the last valid byte.
func (c *Chunk) End() uint64 {
	return c.Start + uint64(c.Size)
}

// Full reports whether the whole capacity was filled.
func (c *Chunk) Full() bool {
	return c.Size == len(c.Buf)
}

// Fill reads up to len(Buf) bytes from r. Running out of input early is not an
// error: Size records how much was read.
func (c *Chunk) Fill(r io.Reader) error {
	n, err := io.ReadFull(r, c.Buf)
	c.Size = n
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil
	}
	return err
}

func (c *Chunk) String() string {
	head := c.Data()
	if len(head) > 32 {
		head = head[:32]
	}
	return fmt.Sprintf("start: %d, size: %d, buf: %q...", c.Start, c.Size, head)
}

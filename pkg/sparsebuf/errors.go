// pkg/sparsebuf/errors.go

package sparsebuf

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidConfig  = errors.New("invalid config")
	ErrNegativeOffset = errors.New("negative offset")
	// ErrChunkMissing means a chunk that should have been fetched is not
	// resident when bytes are copied out of the cache.
	ErrChunkMissing = errors.New("chunk missing from cache")
)

// SourceIOError is a failed seek or read on the underlying source.
type SourceIOError struct {
	Op     string
	Offset uint64
	Err    error
}

func (e *SourceIOError) Error() string {
	return fmt.Sprintf("%s source at %d: %s", e.Op, e.Offset, e.Err)
}

func (e *SourceIOError) Unwrap() error { return e.Err }
func (e *SourceIOError) Cause() error  { return e.Err }

// EncodingError reports a line that is not valid UTF-8. The cursor has already
// moved past the line when it is returned.
type EncodingError struct {
	Offset uint64
	Len    int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid utf-8 in line at %d (%d bytes)", e.Offset, e.Len)
}

// pkg/source/bwlimit.go

package source

import (
	"io"

	"github.com/juju/ratelimit"
)

type limitedReader struct {
	io.ReadSeekCloser
	r *ratelimit.Bucket
}

func (l *limitedReader) Read(buf []byte) (int, error) {
	n, err := l.ReadSeekCloser.Read(buf)
	if l.r != nil {
		l.r.Wait(int64(n))
	}
	return n, err
}

// NewLimited throttles reads from rs to about limit bytes per second. Seek and
// Close go straight to rs.
func NewLimited(rs io.ReadSeekCloser, limit int64) io.ReadSeekCloser {
	if limit <= 0 {
		return rs
	}
	// allow a burst of one second worth of data
	return &limitedReader{rs, ratelimit.NewBucketWithRate(float64(limit), limit)}
}

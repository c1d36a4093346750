// pkg/source/source.go

// Package source opens the byte sources a sparse buffer reads from: local
// files and files on a remote host over sftp.
package source

import (
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"SparseBuf/pkg/utils"
)

var logger = utils.GetLogger("sparsebuf")

type Options struct {
	ReadLimit  int64         // bytes per second, 0 means unlimited
	KnownHosts string        // known_hosts file used to verify sftp servers
	Timeout    time.Duration // dial timeout for remote sources
}

func DefaultOptions() *Options {
	return &Options{
		KnownHosts: "~/.ssh/known_hosts",
		Timeout:    10 * time.Second,
	}
}

// Source is an open, seekable byte stream together with its length at the
// time it was opened.
type Source struct {
	io.ReadSeekCloser
	Name string
	Size uint64
}

func (s *Source) String() string {
	return s.Name
}

// Open opens uri, which is either a local path, a file:// URL or an
// sftp://[user@]host[:port]/path URL.
func Open(uri string, opts *Options) (*Source, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	var rs io.ReadSeekCloser
	var size uint64
	var err error
	switch {
	case strings.HasPrefix(uri, "sftp://"):
		var u *url.URL
		u, err = url.Parse(uri)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", uri)
		}
		rs, size, err = openSFTP(u, opts)
	default:
		rs, size, err = openFile(strings.TrimPrefix(uri, "file://"))
	}
	if err != nil {
		return nil, err
	}
	if opts.ReadLimit > 0 {
		logger.Debugf("limit reads of %s to %d bytes/s", uri, opts.ReadLimit)
	}
	return &Source{NewLimited(rs, opts.ReadLimit), uri, size}, nil
}

func openFile(path string) (io.ReadSeekCloser, uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, errors.Wrapf(err, "stat %s", path)
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, 0, errors.Errorf("%s is a directory", path)
	}
	adviseRandom(f)
	return f, uint64(fi.Size()), nil
}

// pkg/sparsebuf/config.go

package sparsebuf

import "github.com/pkg/errors"

const (
	DefaultChunkSize    = 125000
	DefaultLineSeekSize = 1024
)

// Config for a Buffer.
type Config struct {
	ChunkSize    int   // bytes per aligned chunk
	LineSeekSize int   // window used when scanning for a delimiter
	CacheSize    int64 // max resident bytes, 0 means never evict
	Delimiter    byte  // line terminator used by ReadLines
}

func DefaultConfig() *Config {
	return &Config{
		ChunkSize:    DefaultChunkSize,
		LineSeekSize: DefaultLineSeekSize,
		Delimiter:    '\n',
	}
}

func (c *Config) Check() error {
	if c.ChunkSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "chunk size %d", c.ChunkSize)
	}
	if c.LineSeekSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "line seek size %d", c.LineSeekSize)
	}
	if c.CacheSize < 0 {
		return errors.Wrapf(ErrInvalidConfig, "cache size %d", c.CacheSize)
	}
	return nil
}

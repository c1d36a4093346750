// cmd/buffer.go

package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"SparseBuf/pkg/source"
	"SparseBuf/pkg/sparsebuf"
)

func bufferFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "chunk-size",
			Value: sparsebuf.DefaultChunkSize,
			Usage: "size of aligned chunks in bytes",
		},
		&cli.IntFlag{
			Name:  "line-seek-size",
			Value: sparsebuf.DefaultLineSeekSize,
			Usage: "window in bytes used when scanning for a line end",
		},
		&cli.StringFlag{
			Name:  "cache-size",
			Value: "0",
			Usage: "max memory for cached chunks (e.g. 64MiB), 0 keeps every chunk",
		},
		&cli.StringFlag{
			Name:  "read-limit",
			Value: "0",
			Usage: "bandwidth limit for reading the source per second (e.g. 10MB), 0 means unlimited",
		},
		&cli.StringFlag{
			Name:  "known-hosts",
			Value: "~/.ssh/known_hosts",
			Usage: "known_hosts file used to verify sftp servers",
		},
	}
}

func parseSize(c *cli.Context, name string) (int64, error) {
	n, err := humanize.ParseBytes(c.String(name))
	if err != nil {
		return 0, fmt.Errorf("invalid --%s: %s", name, err)
	}
	return int64(n), nil
}

// openBuffer opens the source named by the first argument and wraps it into a
// buffer configured from the command flags.
func openBuffer(c *cli.Context) (*sparsebuf.Buffer, error) {
	if c.Args().Len() < 1 {
		return nil, fmt.Errorf("PATH is needed")
	}
	limit, err := parseSize(c, "read-limit")
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseSize(c, "cache-size")
	if err != nil {
		return nil, err
	}

	opts := source.DefaultOptions()
	opts.ReadLimit = limit
	opts.KnownHosts = c.String("known-hosts")
	src, err := source.Open(c.Args().Get(0), opts)
	if err != nil {
		return nil, err
	}

	conf := sparsebuf.DefaultConfig()
	conf.ChunkSize = c.Int("chunk-size")
	conf.LineSeekSize = c.Int("line-seek-size")
	conf.CacheSize = cacheSize
	buf, err := sparsebuf.New(src, src.Size, conf)
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	logger.Debugf("opened %s (%s)", src, humanize.IBytes(src.Size))
	return buf, nil
}

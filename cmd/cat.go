// cmd/cat.go

package main

import (
	"bufio"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func catFlags() *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "copy a byte range of a file to stdout",
		ArgsUsage: "PATH",
		Action:    cat,
		Flags: append(bufferFlags(),
			&cli.Uint64Flag{
				Name:    "offset",
				Aliases: []string{"o"},
				Usage:   "first byte of the range",
			},
			&cli.Int64Flag{
				Name:    "length",
				Aliases: []string{"l"},
				Value:   -1,
				Usage:   "length of the range, -1 reads to the end",
			},
		),
	}
}

func cat(c *cli.Context) error {
	buf, err := openBuffer(c)
	if err != nil {
		return err
	}
	defer buf.Close()

	off := c.Uint64("offset")
	if off > buf.Len() {
		off = buf.Len()
	}
	left := int64(buf.Len() - off)
	if l := c.Int64("length"); l >= 0 && l < left {
		left = l
	}
	if _, err = buf.Seek(int64(off), io.SeekStart); err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	p := make([]byte, buf.Stats().ChunkSize)
	for left > 0 {
		if int64(len(p)) > left {
			p = p[:left]
		}
		n, err := buf.Read(p)
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}
		if _, err = w.Write(p[:n]); err != nil {
			return err
		}
		left -= int64(n)
	}
	return nil
}

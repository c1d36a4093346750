// cmd/lines.go

package main

import (
	"bufio"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func linesFlags() *cli.Command {
	return &cli.Command{
		Name:      "lines",
		Usage:     "print lines starting at a byte offset",
		ArgsUsage: "PATH",
		Action:    lines,
		Flags: append(bufferFlags(),
			&cli.Int64Flag{
				Name:    "offset",
				Aliases: []string{"o"},
				Usage:   "byte offset to start from, negative counts from the end",
			},
			&cli.IntFlag{
				Name:    "lines",
				Aliases: []string{"n"},
				Value:   10,
				Usage:   "number of lines to print",
			},
			&cli.BoolFlag{
				Name:  "align",
				Usage: "skip the partial line at the offset",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "fail on lines that are not valid UTF-8 instead of skipping them",
			},
		),
	}
}

func lines(c *cli.Context) error {
	buf, err := openBuffer(c)
	if err != nil {
		return err
	}
	defer buf.Close()

	off := c.Int64("offset")
	whence := io.SeekStart
	if off < 0 {
		whence = io.SeekEnd
	}
	if _, err = buf.Seek(off, whence); err != nil {
		return err
	}
	if c.Bool("align") && buf.Pos() > 0 {
		// start over from the byte before, so an offset right after a line end is kept
		if _, err = buf.Seek(-1, io.SeekCurrent); err != nil {
			return err
		}
		var partial []byte
		if _, err = buf.ReadUntil('\n', &partial); err != nil {
			return err
		}
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	_, err = printLines(buf, c.Int("lines"), c.Bool("strict"), w)
	return err
}

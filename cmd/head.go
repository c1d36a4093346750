// cmd/head.go

package main

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"SparseBuf/pkg/sparsebuf"
)

func headFlags() *cli.Command {
	return &cli.Command{
		Name:      "head",
		Usage:     "print the first lines of a file",
		ArgsUsage: "PATH",
		Action:    head,
		Flags: append(bufferFlags(),
			&cli.IntFlag{
				Name:    "lines",
				Aliases: []string{"n"},
				Value:   10,
				Usage:   "number of lines to print",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "fail on lines that are not valid UTF-8 instead of skipping them",
			},
		),
	}
}

// printLines writes up to n lines from the cursor of buf into w and returns
// how many were written. Invalid lines are skipped unless strict is set.
func printLines(buf *sparsebuf.Buffer, n int, strict bool, w io.Writer) (int, error) {
	var printed int
	for printed < n {
		want := n - printed
		lines, err := buf.ReadLines(want)
		for _, l := range lines {
			if _, werr := io.WriteString(w, l); werr != nil {
				return printed, werr
			}
			printed++
		}
		var ee *sparsebuf.EncodingError
		if errors.As(err, &ee) && !strict {
			logger.Warnf("skip line: %s", ee)
			continue
		}
		if err != nil {
			return printed, err
		}
		if len(lines) < want {
			break
		}
	}
	return printed, nil
}

func head(c *cli.Context) error {
	buf, err := openBuffer(c)
	if err != nil {
		return err
	}
	defer buf.Close()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	n, err := printLines(buf, c.Int("lines"), c.Bool("strict"), w)
	logger.Debugf("printed %d lines, %+v", n, buf.Stats())
	return err
}

// cmd/scan.go

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"SparseBuf/pkg/sparsebuf"
	"SparseBuf/pkg/utils"
)

func scanFlags() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "read a whole file line by line and report line counts",
		ArgsUsage: "PATH",
		Action:    scan,
		Flags: append(bufferFlags(),
			&cli.IntFlag{
				Name:  "batch",
				Value: 1024,
				Usage: "lines requested per call",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "do not show the progress bar",
			},
		),
	}
}

type scanResult struct {
	lines   uint64
	invalid uint64
	longest int
}

func scanLines(buf *sparsebuf.Buffer, batch int, progress func(pos uint64)) (*scanResult, error) {
	if batch <= 0 {
		return nil, fmt.Errorf("invalid batch size %d", batch)
	}
	r := &scanResult{}
	for {
		lines, err := buf.ReadLines(batch)
		for _, l := range lines {
			r.lines++
			if len(l) > r.longest {
				r.longest = len(l)
			}
		}
		progress(buf.Pos())
		var ee *sparsebuf.EncodingError
		if errors.As(err, &ee) {
			logger.Debugf("invalid line: %s", ee)
			r.invalid++
			continue
		}
		if err != nil {
			return r, err
		}
		if len(lines) < batch {
			return r, nil
		}
	}
}

func scan(c *cli.Context) error {
	buf, err := openBuffer(c)
	if err != nil {
		return err
	}
	defer buf.Close()

	progress, bar := utils.NewDynProgressBar("scanning: ", c.Bool("no-progress") || c.Bool("quiet"))
	bar.SetTotal(int64(buf.Len()), false)
	start := utils.Now()
	r, err := scanLines(buf, c.Int("batch"), func(pos uint64) {
		bar.SetCurrent(int64(pos))
	})
	bar.SetTotal(-1, true)
	progress.Wait()
	if err != nil {
		return err
	}

	used := time.Since(start)
	if used <= 0 {
		used = time.Millisecond
	}
	st := buf.Stats()
	fmt.Printf("lines: %d, invalid: %d, longest: %s, size: %s\n",
		r.lines, r.invalid, humanize.IBytes(uint64(r.longest)), humanize.IBytes(st.End))
	fmt.Printf("chunks fetched: %d, cache hits: %d, used: %s (%s/s)\n",
		st.Fetches, st.Hits, used.Round(time.Millisecond),
		humanize.IBytes(uint64(float64(st.End)/used.Seconds())))
	return nil
}

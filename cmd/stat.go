// cmd/stat.go

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"SparseBuf/pkg/utils"
)

type cacheSection struct {
	Session       string
	Size          string
	Pos           uint64
	ChunkSize     int
	Fetches       uint64
	Hits          uint64
	Evictions     uint64
	Resident      int
	ResidentBytes string
}

type processSection struct {
	Uptime string
	Utime  float64
	Stime  float64
	MaxRSS string
}

type sections struct {
	Cache   *cacheSection
	Process *processSection
}

func printJson(v interface{}) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatalf("json: %s", err)
	}
	fmt.Println(string(output))
}

func statFlags() *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "read lines or a range of a file and show cache statistics",
		ArgsUsage: "PATH",
		Action:    stat,
		Flags: append(bufferFlags(),
			&cli.IntFlag{
				Name:    "lines",
				Aliases: []string{"n"},
				Value:   10,
				Usage:   "number of lines to read before reporting",
			},
			&cli.Uint64Flag{
				Name:  "offset",
				Usage: "byte offset to read the lines from",
			},
		),
	}
}

func stat(c *cli.Context) error {
	buf, err := openBuffer(c)
	if err != nil {
		return err
	}
	defer buf.Close()

	if _, err = buf.Seek(int64(c.Uint64("offset")), io.SeekStart); err != nil {
		return err
	}
	if _, err = printLines(buf, c.Int("lines"), false, io.Discard); err != nil {
		return err
	}

	st := buf.Stats()
	ru := utils.GetRusage()
	printJson(&sections{
		Cache: &cacheSection{
			Session:       st.Session,
			Size:          humanize.IBytes(st.End),
			Pos:           st.Pos,
			ChunkSize:     st.ChunkSize,
			Fetches:       st.Fetches,
			Hits:          st.Hits,
			Evictions:     st.Evictions,
			Resident:      st.Resident,
			ResidentBytes: humanize.IBytes(uint64(st.ResidentBytes)),
		},
		Process: &processSection{
			Uptime: utils.Clock().String(),
			Utime:  ru.GetUtime(),
			Stime:  ru.GetStime(),
			MaxRSS: humanize.IBytes(ru.GetMaxRSS()),
		},
	})
	return nil
}

// cmd/main.go

package main

import (
	"fmt"
	"os"

	"github.com/google/gops/agent"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"SparseBuf/pkg/utils"
	"SparseBuf/pkg/version"
)

var logger = utils.GetLogger("sparsebuf")

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		logger.Fatal(err)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = &cli.BoolFlag{
		Name: "version", Aliases: []string{"V"},
		Usage: "print only the version",
	}
	return &cli.App{
		Name:                 "sparsebuf",
		Usage:                "random access line reader backed by a chunk cache",
		Version:              version.Version(),
		EnableBashCompletion: true,
		Flags:                globalFlags(),
		Before:               setup,
		Commands: []*cli.Command{
			headFlags(),
			linesFlags(),
			catFlags(),
			scanFlags(),
			statFlags(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"debug", "v"},
			Usage:   "enable debug log",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only warning and errors",
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "enable trace log",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "write log into this file instead of stderr",
		},
		&cli.BoolFlag{
			Name:  "gops",
			Usage: "start a gops agent for diagnostics",
		},
	}
}

func setLoggerLevel(c *cli.Context) {
	if c.Bool("trace") {
		utils.SetLogLevel(logrus.TraceLevel)
	} else if c.Bool("verbose") {
		utils.SetLogLevel(logrus.DebugLevel)
	} else if c.Bool("quiet") {
		utils.SetLogLevel(logrus.WarnLevel)
	} else {
		utils.SetLogLevel(logrus.InfoLevel)
	}
}

func setup(c *cli.Context) error {
	setLoggerLevel(c)
	if p := c.String("log-file"); p != "" {
		if err := utils.SetOutFile(p); err != nil {
			return fmt.Errorf("open log file %s: %s", p, err)
		}
	}
	if c.Bool("gops") {
		if err := agent.Listen(agent.Options{}); err != nil {
			logger.Warnf("start gops agent: %s", err)
		}
	}
	return nil
}

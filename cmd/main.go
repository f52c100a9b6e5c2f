// cmd/main.go

package main

import (
	"os"

	"AveView/pkg/utils"
	"AveView/pkg/version"

	"github.com/google/gops/agent"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var logger = utils.GetLogger("aveview")

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"debug"},
			Usage:   "enable debug log",
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "enable trace log",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only warning and errors",
		},
		&cli.StringFlag{
			Name:  "log",
			Usage: "path of log file",
		},
		&cli.BoolFlag{
			Name:  "debug-agent",
			Usage: "start a gops agent for runtime diagnostics",
		},
	}
}

func setLoggerLevel(c *cli.Context) {
	switch {
	case c.Bool("trace"):
		utils.SetLogLevel(logrus.TraceLevel)
	case c.Bool("verbose"):
		utils.SetLogLevel(logrus.DebugLevel)
	case c.Bool("quiet"):
		utils.SetLogLevel(logrus.WarnLevel)
	default:
		utils.SetLogLevel(logrus.InfoLevel)
	}
	if p := c.String("log"); p != "" {
		if err := utils.SetOutFile(p); err != nil {
			logger.Warnf("open log file %s: %s", p, err)
		}
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                 "aveview",
		Usage:                "random access to large remote files through a bounded chunk cache",
		Version:              version.Version(),
		EnableBashCompletion: true,
		Flags:                globalFlags(),
		Before: func(c *cli.Context) error {
			setLoggerLevel(c)
			if c.Bool("debug-agent") {
				if err := agent.Listen(agent.Options{}); err != nil {
					logger.Warnf("start gops agent: %s", err)
				}
			}
			return nil
		},
		Commands: []*cli.Command{
			infoFlags(),
			catFlags(),
			benchFlags(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Fatalf("%s", err)
	}
}

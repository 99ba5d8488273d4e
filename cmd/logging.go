package cmd

import (
	"fmt"

	"github.com/achilleasa/go-restir/log"
	"github.com/urfave/cli"
)

var logger = log.New("go-restir")

// Get the global flags that control log verbosity.
func LoggingFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "",
			Usage: "log level (debug, info, notice, warning, error); overrides -v and -vv",
		},
	}
}

// Apply the verbosity flags. An explicit log level wins over -v/-vv.
func setupLogging(ctx *cli.Context) error {
	level := log.Notice
	switch {
	case ctx.GlobalBool("vv"):
		level = log.Debug
	case ctx.GlobalBool("v"):
		level = log.Info
	}

	if name := ctx.GlobalString("log-level"); name != "" {
		var err error
		if level, err = log.ParseLevel(name); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
	}

	log.SetLevel(level)
	return nil
}

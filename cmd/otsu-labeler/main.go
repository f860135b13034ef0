// Command otsu-labeler thresholds a greyscale frame with Otsu's method,
// cleans the mask with a 4-neighbour opening and paints every connected
// region a distinct grey level.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"otsu-labeler/internal/config"
)

const (
	AppName    = "otsu-labeler"
	AppVersion = "1.0.0"

	flagConfig         = "config"
	flagLogLevel       = "log-level"
	flagLogFormat      = "log-format"
	flagRows           = "rows"
	flagCols           = "cols"
	flagQueueCapacity  = "queue-capacity"
	flagOverflowPolicy = "overflow-policy"
	flagInterimColor   = "interim-color"
	flagInputFormat    = "input-format"
	flagOutputFormat   = "output-format"
	flagOutput         = "output"
	flagReport         = "report"
)

var app = &cli.App{
	Name:            AppName,
	Usage:           "label connected regions of a thresholded greyscale frame",
	Version:         AppVersion,
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "load configuration from `FILE`",
		},
		&cli.StringFlag{
			Name:  flagLogLevel,
			Usage: "debug, info, warning or error",
		},
		&cli.StringFlag{
			Name:  flagLogFormat,
			Usage: "console or json",
		},
		&cli.IntFlag{
			Name:  flagRows,
			Usage: "raster height in pixels",
			Value: config.DefaultRows,
		},
		&cli.IntFlag{
			Name:  flagCols,
			Usage: "raster width in pixels",
			Value: config.DefaultCols,
		},
		&cli.IntFlag{
			Name:  flagQueueCapacity,
			Usage: "flood fill queue capacity, 0 for half the raster area",
		},
		&cli.StringFlag{
			Name:  flagOverflowPolicy,
			Usage: "grow or report",
		},
		&cli.IntFlag{
			Name:  flagInterimColor,
			Usage: "grey level painted during the counting pass",
			Value: config.DefaultInterimColor,
		},
		&cli.StringFlag{
			Name:  flagInputFormat,
			Usage: "auto, pgm, packed or image",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "run",
			Usage:     "segment and label a frame",
			ArgsUsage: "[input]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagOutput,
					Aliases: []string{"o"},
					Usage:   "write the labelled raster to `FILE`",
					Value:   config.DefaultOutput,
				},
				&cli.StringFlag{
					Name:  flagOutputFormat,
					Usage: "binary (P5) or ascii (P2)",
				},
				&cli.StringFlag{
					Name:  flagReport,
					Usage: "write a YAML summary to `FILE`",
				},
			},
			Action: RunAction,
		},
		{
			Name:      "verify",
			Usage:     "compare threshold and component count against OpenCV",
			ArgsUsage: "[input]",
			Action:    VerifyAction,
		},
		{
			Name:      "view",
			Usage:     "show input, mask and labels in a window",
			ArgsUsage: "[input]",
			Action:    ViewAction,
		},
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		stop()
		os.Exit(1)
	}
}

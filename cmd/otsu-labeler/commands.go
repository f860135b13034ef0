package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"otsu-labeler/internal/config"
	"otsu-labeler/internal/gui"
	"otsu-labeler/internal/logger"
	"otsu-labeler/internal/opencv/reference"
	"otsu-labeler/internal/pipeline"
	"otsu-labeler/internal/raster"
)

// session is what every command needs after flags have been merged.
type session struct {
	cfg    config.Config
	log    logger.Logger
	input  string
	raster *raster.Raster
}

func RunAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	res, err := s.segment(c.Context)
	if err != nil {
		return err
	}

	saver := pipeline.NewImageSaver(s.cfg.Format(), s.log)
	if err := saver.Save(s.cfg.OutputPath, res.Output); err != nil {
		return err
	}

	if s.cfg.ReportPath != "" {
		if err := writeReport(s.cfg.ReportPath, pipeline.NewReport(s.input, res)); err != nil {
			return err
		}
	}

	printf(c.App.Writer, "%d components, threshold %d, written to %s\n",
		res.ComponentCount(), res.Threshold, s.cfg.OutputPath)
	return nil
}

func VerifyAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	res, err := s.segment(c.Context)
	if err != nil {
		return err
	}

	cmp, err := reference.Compare(s.raster, res)
	if err != nil {
		return err
	}

	printf(c.App.Writer, "threshold:  ours %d, opencv %d\n", cmp.Threshold, cmp.OpenCVThreshold)
	printf(c.App.Writer, "components: ours %d, opencv %d\n", cmp.Components, cmp.OpenCVComponents)

	if !cmp.ThresholdsAgree() {
		s.log.Warning("verify", "thresholds differ", map[string]interface{}{
			"ours":   cmp.Threshold,
			"opencv": cmp.OpenCVThreshold,
		})
	}
	if !cmp.ComponentsAgree() {
		return errors.Errorf("component counts differ: %d vs %d", cmp.Components, cmp.OpenCVComponents)
	}
	return nil
}

func ViewAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	res, err := s.segment(c.Context)
	if err != nil {
		return err
	}

	gui.Show(AppName+" - "+s.input, s.raster, res)
	return nil
}

func newSession(c *cli.Context) (*session, error) {
	cfg, err := buildConfig(c)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, log: newLogger(cfg)}

	s.input = c.Args().First()
	if s.input == "" {
		if s.input, err = promptInput(c.App.Reader, c.App.Writer); err != nil {
			return nil, err
		}
	}

	loader := pipeline.NewImageLoader(cfg.Dimensions, cfg.InputFormat, s.log)
	if s.raster, err = loader.Load(s.input); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) segment(ctx context.Context) (*pipeline.Result, error) {
	seg := pipeline.NewSegmenter(pipeline.OptionsFromConfig(s.cfg), s.log)
	res, err := seg.Run(ctx, s.raster)
	if err != nil {
		return nil, errors.Wrapf(err, "segmenting %s", s.input)
	}
	return res, nil
}

// buildConfig layers defaults, the config file, the environment and the
// flags the user actually set.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()

	if c.IsSet(flagLogLevel) {
		cfg.LogLevel = c.String(flagLogLevel)
	}
	if c.IsSet(flagLogFormat) {
		cfg.LogFormat = c.String(flagLogFormat)
	}
	if c.IsSet(flagRows) {
		cfg.Dimensions.Rows = c.Int(flagRows)
	}
	if c.IsSet(flagCols) {
		cfg.Dimensions.Cols = c.Int(flagCols)
	}
	if c.IsSet(flagQueueCapacity) {
		cfg.QueueCapacity = c.Int(flagQueueCapacity)
	}
	if c.IsSet(flagOverflowPolicy) {
		cfg.OverflowPolicy = c.String(flagOverflowPolicy)
	}
	if c.IsSet(flagInterimColor) {
		cfg.InterimColor = c.Int(flagInterimColor)
	}
	if c.IsSet(flagInputFormat) {
		cfg.InputFormat = c.String(flagInputFormat)
	}
	if c.IsSet(flagOutputFormat) {
		cfg.OutputFormat = c.String(flagOutputFormat)
	}
	if c.IsSet(flagOutput) {
		cfg.OutputPath = c.String(flagOutput)
	}
	if c.IsSet(flagReport) {
		cfg.ReportPath = c.String(flagReport)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func newLogger(cfg config.Config) logger.Logger {
	if cfg.LogFormat == "json" {
		return logger.NewZerolog(os.Stderr, cfg.Level())
	}
	return logger.NewConsoleLogger(cfg.Level())
}

func promptInput(r io.Reader, w io.Writer) (string, error) {
	printf(w, "input file: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", errors.Wrap(pipeline.ErrResourceUnavailable, "no input file given")
	}
	name := strings.TrimSpace(line)
	if name == "" {
		return "", errors.Wrap(pipeline.ErrResourceUnavailable, "no input file given")
	}
	return name, nil
}

func writeReport(path string, rep pipeline.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(pipeline.ErrResourceUnavailable, err.Error())
	}
	if err := pipeline.WriteReport(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}

// Package config holds the run settings for the labeler. Values come from
// defaults, then an optional YAML file, then the environment, then flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"otsu-labeler/internal/logger"
	"otsu-labeler/internal/pgm"
	"otsu-labeler/internal/processing/floodfill"
	"otsu-labeler/internal/raster"
)

const (
	DefaultRows         = 120
	DefaultCols         = 160
	DefaultInterimColor = 80
	DefaultOutput       = "out.pgm"
)

type Config struct {
	Dimensions raster.Dimensions `yaml:"dimensions"`

	// QueueCapacity bounds each flood fill queue. Zero means half the
	// raster area; the worst case any region can need is the full area.
	QueueCapacity  int    `yaml:"queue_capacity"`
	OverflowPolicy string `yaml:"overflow_policy"`
	InterimColor   int    `yaml:"interim_color"`

	InputFormat  string `yaml:"input_format"`
	OutputFormat string `yaml:"output_format"`
	OutputPath   string `yaml:"output_path"`
	ReportPath   string `yaml:"report_path"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func Default() Config {
	return Config{
		Dimensions:     raster.Dimensions{Rows: DefaultRows, Cols: DefaultCols},
		OverflowPolicy: floodfill.Grow.String(),
		InterimColor:   DefaultInterimColor,
		InputFormat:    "auto",
		OutputFormat:   pgm.Binary.String(),
		OutputPath:     DefaultOutput,
		LogLevel:       logger.InfoLevel.String(),
		LogFormat:      "console",
	}
}

// Load reads path over the defaults. A missing path is not an error when
// the caller passed an empty string.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv lets LOG_LEVEL and DEBUG=1 override the configured level.
func (c *Config) ApplyEnv() {
	fallback, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return
	}
	c.LogLevel = logger.LevelFromEnv(fallback).String()
}

func (c Config) Validate() error {
	var errs []error

	if err := c.Dimensions.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.QueueCapacity < 0 || (c.Dimensions.Area() > 0 && c.QueueCapacity > c.Dimensions.Area()) {
		errs = append(errs, fmt.Errorf("queue_capacity must be between 0 and %d, got: %d", c.Dimensions.Area(), c.QueueCapacity))
	}
	if _, err := floodfill.ParsePolicy(c.OverflowPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.InterimColor < 1 || c.InterimColor > 254 {
		errs = append(errs, fmt.Errorf("interim_color must be between 1 and 254, got: %d", c.InterimColor))
	}
	switch strings.ToLower(c.InputFormat) {
	case "auto", "pgm", "packed", "image":
	default:
		errs = append(errs, fmt.Errorf("unknown input_format: %q", c.InputFormat))
	}
	if _, err := pgm.ParseFormat(c.OutputFormat); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log_format: %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

func (c Config) Policy() floodfill.OverflowPolicy {
	p, _ := floodfill.ParsePolicy(c.OverflowPolicy)
	return p
}

func (c Config) Format() pgm.Format {
	f, _ := pgm.ParseFormat(c.OutputFormat)
	return f
}

func (c Config) Level() logger.LogLevel {
	l, _ := logger.ParseLevel(c.LogLevel)
	return l
}

package pipeline

import (
	"fmt"
	"io"
	"time"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"otsu-labeler/internal/processing/histogram"
	"otsu-labeler/internal/raster"
	"otsu-labeler/internal/timing"
)

// Report is the YAML summary written next to the labelled raster.
type Report struct {
	Input            string            `yaml:"input"`
	Dimensions       raster.Dimensions `yaml:"dimensions"`
	Threshold        int               `yaml:"threshold"`
	Intensity        histogram.Stats   `yaml:"intensity"`
	ForegroundPixels int               `yaml:"foreground_pixels"`
	ComponentCount   int               `yaml:"component_count"`
	AreaMean         float64           `yaml:"area_mean"`
	AreaStdDev       float64           `yaml:"area_stddev"`
	Components       []Component       `yaml:"components"`
	Overflows        []Overflow        `yaml:"overflows,omitempty"`
	Stages           []timing.Stage    `yaml:"stages"`
	Elapsed          time.Duration     `yaml:"elapsed"`
}

func NewReport(input string, res *Result) Report {
	rep := Report{
		Input:            input,
		Dimensions:       res.Mask.Dims(),
		Threshold:        res.Threshold,
		Intensity:        res.Histogram.Stats(),
		ForegroundPixels: res.Mask.Count(raster.Foreground),
		ComponentCount:   res.ComponentCount(),
		Components:       res.Components,
		Overflows:        res.Overflows,
		Stages:           res.Stages,
		Elapsed:          res.Elapsed,
	}

	if len(res.Components) > 0 {
		areas := make([]float64, len(res.Components))
		for i, c := range res.Components {
			areas[i] = float64(c.Area)
		}
		rep.AreaMean = stat.Mean(areas, nil)
		if len(areas) > 1 {
			rep.AreaStdDev = stat.StdDev(areas, nil)
		}
	}
	return rep
}

func WriteReport(w io.Writer, rep Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

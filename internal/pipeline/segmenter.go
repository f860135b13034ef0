package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"otsu-labeler/internal/config"
	"otsu-labeler/internal/logger"
	"otsu-labeler/internal/processing/chain"
	"otsu-labeler/internal/processing/floodfill"
	"otsu-labeler/internal/processing/histogram"
	"otsu-labeler/internal/processing/morphology"
	"otsu-labeler/internal/processing/threshold"
	"otsu-labeler/internal/raster"
	"otsu-labeler/internal/timing"
)

type Options struct {
	QueueCapacity int
	Policy        floodfill.OverflowPolicy
	// InterimColor paints regions during the count pass. Its value never
	// reaches the output.
	InterimColor uint8
}

func DefaultOptions() Options {
	return Options{
		Policy:       floodfill.Grow,
		InterimColor: config.DefaultInterimColor,
	}
}

func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		QueueCapacity: cfg.QueueCapacity,
		Policy:        cfg.Policy(),
		InterimColor:  uint8(cfg.InterimColor),
	}
}

// Result carries every intermediate product of one run.
type Result struct {
	Threshold int
	// Cut is the lowest intensity classified as foreground.
	Cut        int
	Histogram  histogram.Histogram
	Binary     *raster.Raster
	Mask       *raster.Raster
	Output     *raster.Raster
	Components []Component
	Overflows  []Overflow
	Stages     []timing.Stage
	Elapsed    time.Duration
}

func (r *Result) ComponentCount() int {
	return len(r.Components)
}

// Segmenter runs histogram, Otsu threshold, binarisation, erode+dilate
// cleanup, then the count and colour passes.
type Segmenter struct {
	opts    Options
	filler  *floodfill.Filler
	cleanup *chain.ProcessingChain
	logger  logger.Logger
}

func NewSegmenter(opts Options, log logger.Logger) *Segmenter {
	if log == nil {
		log = logger.NewNop()
	}
	return &Segmenter{
		opts:   opts,
		filler: floodfill.NewFiller(opts.QueueCapacity, opts.Policy),
		cleanup: chain.NewProcessingChain([]chain.ProcessingStep{
			morphology.NewErodeStep(),
			morphology.NewDilateStep(),
		}),
		logger: log,
	}
}

// Run segments input, which is left unmodified.
func (s *Segmenter) Run(ctx context.Context, input *raster.Raster) (*Result, error) {
	if input == nil {
		return nil, fmt.Errorf("no input raster")
	}
	if err := input.Dims().Validate(); err != nil {
		return nil, err
	}

	tracker := timing.NewTracker(s.logger)
	res := &Result{}

	stageCtx := tracker.StartTiming(ctx, "histogram")
	res.Histogram = histogram.Build(input)
	res.Threshold = threshold.Otsu(&res.Histogram, input.Dims().Area())
	tracker.EndTiming(stageCtx)

	s.logger.Info("Segmenter", "threshold selected", map[string]interface{}{
		"threshold":  res.Threshold,
		"dimensions": input.Dims().String(),
	})

	// Otsu's threshold closes the background class, so foreground starts
	// one level above it. Cutting at t itself would turn a 50/200 frame
	// entirely foreground and an all-zero frame into one component.
	res.Cut = res.Threshold + 1
	stageCtx = tracker.StartTiming(ctx, "binarize")
	res.Binary = threshold.Binarize(input, res.Cut)
	tracker.EndTiming(stageCtx)

	s.logger.Debug("Segmenter", "cleanup started", map[string]interface{}{
		"steps": s.cleanup.GetStepNames(),
	})
	s.cleanup.SetObserver(tracker.Record)
	mask, err := s.cleanup.Execute(ctx, res.Binary)
	if err != nil {
		return nil, fmt.Errorf("cleanup failed: %w", err)
	}
	res.Mask = mask

	// Both passes share one visited mask, cleared before each scan.
	visited := raster.NewVisitedMask(res.Mask.Dims())

	stageCtx = tracker.StartTiming(ctx, "count")
	res.Components, err = s.countPass(ctx, res, visited)
	tracker.EndTiming(stageCtx)
	if err != nil {
		return nil, fmt.Errorf("count pass failed: %w", err)
	}

	stageCtx = tracker.StartTiming(ctx, "color")
	res.Output, err = s.colorPass(ctx, res, visited)
	tracker.EndTiming(stageCtx)
	if err != nil {
		return nil, fmt.Errorf("color pass failed: %w", err)
	}

	res.Stages = tracker.Stages()
	res.Elapsed = tracker.Total()

	s.logger.Info("Segmenter", "segmentation complete", map[string]interface{}{
		"components": res.ComponentCount(),
		"foreground": res.Mask.Count(raster.Foreground),
		"overflows":  len(res.Overflows),
	})

	return res, nil
}

// countPass labels a copy of the cleaned mask to learn how many regions
// exist, recording one Component per region in discovery order.
func (s *Segmenter) countPass(ctx context.Context, res *Result, visited *raster.VisitedMask) ([]Component, error) {
	work := res.Mask.Clone()
	var components []Component

	err := s.scan(ctx, work, visited, "count", res, func(row, col int) uint8 {
		return s.opts.InterimColor
	}, func(row, col int, region floodfill.Region) {
		components = append(components, newComponent(len(components)+1, row, col, region))
	})
	return components, err
}

// colorPass paints the regions of a fresh copy of the cleaned mask with
// evenly spaced intensities.
func (s *Segmenter) colorPass(ctx context.Context, res *Result, visited *raster.VisitedMask) (*raster.Raster, error) {
	out := res.Mask.Clone()
	ramp := NewColorRamp(len(res.Components))
	found := 0

	s.logger.Debug("Segmenter", "color ramp", map[string]interface{}{
		"rate": ramp.Rate(),
	})

	var color uint8
	err := s.scan(ctx, out, visited, "color", res, func(row, col int) uint8 {
		color = ramp.Next()
		return color
	}, func(row, col int, region floodfill.Region) {
		if found < len(res.Components) {
			res.Components[found].Color = color
		}
		found++
	})
	if err != nil {
		return nil, err
	}
	if found != len(res.Components) {
		return nil, fmt.Errorf("color pass found %d regions, count pass found %d", found, len(res.Components))
	}
	return out, nil
}

// scan walks mask in row-major order and fills every unclaimed foreground
// cell with the colour chosen by pick.
func (s *Segmenter) scan(ctx context.Context, mask *raster.Raster, visited *raster.VisitedMask, pass string, res *Result,
	pick func(row, col int) uint8, found func(row, col int, region floodfill.Region)) error {

	visited.Reset()
	rows, cols := mask.Rows(), mask.Cols()

	for row := 0; row < rows; row++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for col := 0; col < cols; col++ {
			if mask.At(row, col) != raster.Foreground || visited.Visited(row, col) {
				continue
			}

			region, err := s.filler.Fill(mask, row, col, visited, pick(row, col))
			if errors.Is(err, floodfill.ErrQueueOverflow) {
				s.recordOverflow(res, pass, row, col, region, err)
			} else if err != nil {
				return err
			}
			found(row, col, region)
		}
	}

	s.logger.Debug("Segmenter", "pass complete", map[string]interface{}{
		"pass":    pass,
		"visited": visited.Count(),
	})
	return nil
}

func (s *Segmenter) recordOverflow(res *Result, pass string, row, col int, region floodfill.Region, err error) {
	res.Overflows = append(res.Overflows, Overflow{
		Pass:     pass,
		SeedRow:  row,
		SeedCol:  col,
		Dropped:  region.Dropped,
		Capacity: region.QueueCap,
	})
	s.logger.Warning("Segmenter", "flood fill truncated", map[string]interface{}{
		"pass":    pass,
		"dropped": region.Dropped,
		"error":   err.Error(),
	})
}

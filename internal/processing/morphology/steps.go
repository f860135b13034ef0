package morphology

import (
	"context"

	"otsu-labeler/internal/raster"
)

// ErodeStep adapts ErodeInto to a processing chain.
type ErodeStep struct{}

func NewErodeStep() *ErodeStep { return &ErodeStep{} }

func (e *ErodeStep) Name() string { return "erode" }

func (e *ErodeStep) Apply(ctx context.Context, input *raster.Raster) (*raster.Raster, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	out := raster.New(input.Dims())
	if err := ErodeInto(out, input); err != nil {
		return nil, err
	}
	return out, nil
}

// DilateStep adapts DilateInto to a processing chain.
type DilateStep struct{}

func NewDilateStep() *DilateStep { return &DilateStep{} }

func (d *DilateStep) Name() string { return "dilate" }

func (d *DilateStep) Apply(ctx context.Context, input *raster.Raster) (*raster.Raster, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	out := raster.New(input.Dims())
	if err := DilateInto(out, input); err != nil {
		return nil, err
	}
	return out, nil
}

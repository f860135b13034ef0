package chain

import (
	"context"
	"fmt"
	"time"

	"otsu-labeler/internal/raster"
)

// ProcessingStep transforms a raster into a new one. Implementations must
// not mutate their input.
type ProcessingStep interface {
	Apply(ctx context.Context, input *raster.Raster) (*raster.Raster, error)
	Name() string
}

// StepObserver is told how long each executed step took.
type StepObserver func(step string, elapsed time.Duration)

type ProcessingChain struct {
	steps    []ProcessingStep
	observer StepObserver
}

func NewProcessingChain(steps []ProcessingStep) *ProcessingChain {
	return &ProcessingChain{
		steps: steps,
	}
}

func (pc *ProcessingChain) SetObserver(observer StepObserver) {
	pc.observer = observer
}

// Execute runs the steps in order, feeding each output to the next. The
// input raster is left untouched.
func (pc *ProcessingChain) Execute(ctx context.Context, input *raster.Raster) (*raster.Raster, error) {
	current := input

	for _, step := range pc.steps {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		start := time.Now()
		result, err := step.Apply(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}
		if pc.observer != nil {
			pc.observer(step.Name(), time.Since(start))
		}

		current = result
	}

	if current == input {
		return input.Clone(), nil
	}
	return current, nil
}

func (pc *ProcessingChain) GetStepNames() []string {
	names := make([]string, len(pc.steps))
	for i, step := range pc.steps {
		names[i] = step.Name()
	}
	return names
}

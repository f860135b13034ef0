package timing

import (
	"context"
	"sync"
	"time"

	"otsu-labeler/internal/logger"
)

type timingKey struct{}

type TimingInfo struct {
	Operation string
	StartTime time.Time
}

// Stage is one recorded operation duration.
type Stage struct {
	Operation string        `yaml:"operation"`
	Duration  time.Duration `yaml:"duration"`
}

// Tracker records stage durations in the order they complete.
type Tracker struct {
	stages []Stage
	mu     sync.RWMutex
	logger logger.Logger
}

func NewTracker(log logger.Logger) *Tracker {
	return &Tracker{logger: log}
}

func (tt *Tracker) StartTiming(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, timingKey{}, TimingInfo{
		Operation: operation,
		StartTime: time.Now(),
	})
}

func (tt *Tracker) EndTiming(ctx context.Context) {
	timingInfo, ok := ctx.Value(timingKey{}).(TimingInfo)
	if !ok {
		return
	}
	tt.Record(timingInfo.Operation, time.Since(timingInfo.StartTime))
}

func (tt *Tracker) Record(operation string, duration time.Duration) {
	tt.mu.Lock()
	tt.stages = append(tt.stages, Stage{Operation: operation, Duration: duration})
	tt.mu.Unlock()

	if tt.logger != nil {
		tt.logger.Debug("Timing", "stage completed", map[string]interface{}{
			"operation":   operation,
			"duration_us": duration.Microseconds(),
		})
	}
}

func (tt *Tracker) Stages() []Stage {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	result := make([]Stage, len(tt.stages))
	copy(result, tt.stages)
	return result
}

// Total sums every recorded duration.
func (tt *Tracker) Total() time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	var total time.Duration
	for _, s := range tt.stages {
		total += s.Duration
	}
	return total
}

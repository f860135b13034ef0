// Package floodfill labels 4-connected foreground regions breadth-first
// with an explicit bounded queue.
package floodfill

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"otsu-labeler/internal/queue"
	"otsu-labeler/internal/raster"
)

var (
	// ErrQueueOverflow is returned when pushes were dropped and the fill
	// is therefore incomplete.
	ErrQueueOverflow = errors.New("flood fill queue overflow")

	ErrSeedNotForeground = errors.New("seed is not foreground")
)

type OverflowPolicy int

const (
	// Grow doubles the queue, up to the raster area, instead of dropping.
	Grow OverflowPolicy = iota
	// Report drops the push, keeps filling, and returns ErrQueueOverflow.
	Report
)

func (p OverflowPolicy) String() string {
	switch p {
	case Grow:
		return "grow"
	case Report:
		return "report"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

func ParsePolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grow", "":
		return Grow, nil
	case "report":
		return Report, nil
	default:
		return Grow, fmt.Errorf("unknown overflow policy: %q", s)
	}
}

// Region describes what one fill painted.
type Region struct {
	Area   int
	Bounds image.Rectangle
	RowSum int
	ColSum int
	// Dropped counts cells that were painted but never expanded because
	// their push was refused. Cells reachable only through them are not
	// part of the region.
	Dropped int
	// QueueCap is the queue capacity when the fill finished.
	QueueCap int
}

// Centroid returns the mean (row, col) of the painted cells.
func (r Region) Centroid() (row, col float64) {
	if r.Area == 0 {
		return 0, 0
	}
	return float64(r.RowSum) / float64(r.Area), float64(r.ColSum) / float64(r.Area)
}

func (r *Region) add(row, col int) {
	cell := image.Rect(col, row, col+1, row+1)
	if r.Area == 0 {
		r.Bounds = cell
	} else {
		r.Bounds = r.Bounds.Union(cell)
	}
	r.Area++
	r.RowSum += row
	r.ColSum += col
}

// Filler carries the queue sizing policy shared by every fill of a run.
// It holds no per-fill state; each Fill allocates its own queue.
type Filler struct {
	capacity int
	policy   OverflowPolicy
}

// NewFiller returns a Filler whose queues hold capacity pairs. A capacity of
// zero selects half the mask area.
func NewFiller(capacity int, policy OverflowPolicy) *Filler {
	return &Filler{capacity: capacity, policy: policy}
}

func (f *Filler) Policy() OverflowPolicy { return f.policy }

// QueueCapacity resolves the configured capacity for a raster of dims.
func (f *Filler) QueueCapacity(dims raster.Dimensions) int {
	if f.capacity > 0 {
		return f.capacity
	}
	return max(dims.Area()/2, 1)
}

// Fill paints color into the region of Foreground cells 4-connected to the
// seed. Cells are marked visited when enqueued and painted as soon as they
// are discovered, so each is enqueued at most once.
func (f *Filler) Fill(mask *raster.Raster, row, col int, visited *raster.VisitedMask, color uint8) (Region, error) {
	dims := mask.Dims()
	if visited.Dims() != dims {
		return Region{}, fmt.Errorf("%w: visited mask %s for %s raster", raster.ErrDimensionMismatch, visited.Dims(), dims)
	}
	if !dims.Contains(row, col) || mask.At(row, col) != raster.Foreground {
		return Region{}, fmt.Errorf("%w: (%d,%d)", ErrSeedNotForeground, row, col)
	}

	q := queue.New(f.QueueCapacity(dims))
	var region Region

	q.Push(row, col)
	visited.Mark(row, col)
	region.add(row, col)

	isValid := func(r, c int) bool {
		return dims.Contains(r, c) && mask.At(r, c) == raster.Foreground && !visited.Visited(r, c)
	}

	for !q.IsEmpty() {
		cr, cc, _ := q.Pop()
		mask.Set(cr, cc, color)

		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nr, nc := cr+d[0], cc+d[1]
			if !isValid(nr, nc) {
				continue
			}
			mask.Set(nr, nc, color)
			visited.Mark(nr, nc)
			region.add(nr, nc)
			if !f.push(q, dims, nr, nc) {
				region.Dropped++
			}
		}
	}

	region.QueueCap = q.Cap()
	if region.Dropped > 0 {
		return region, fmt.Errorf("%w: %d cells not expanded from seed (%d,%d), capacity %d",
			ErrQueueOverflow, region.Dropped, row, col, q.Cap())
	}
	return region, nil
}

func (f *Filler) push(q *queue.Coord, dims raster.Dimensions, row, col int) bool {
	if q.Push(row, col) {
		return true
	}
	if f.policy != Grow || q.Cap() >= dims.Area() {
		return false
	}
	q.Grow(min(q.Cap()*2, dims.Area()))
	return q.Push(row, col)
}

package histogram

import (
	"gonum.org/v1/gonum/stat"

	"otsu-labeler/internal/raster"
)

const Levels = 256

// Histogram holds one count per 8-bit intensity level.
type Histogram [Levels]int

// Build tallies every cell of r.
func Build(r *raster.Raster) Histogram {
	var h Histogram
	for _, p := range r.Pix {
		h[p]++
	}
	return h
}

// Total is the number of samples tallied.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// WeightedSum returns the sum of level*count over all levels.
func (h *Histogram) WeightedSum() float64 {
	s := 0.0
	for i, c := range h {
		s += float64(i) * float64(c)
	}
	return s
}

// Stats summarises the intensity distribution.
type Stats struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
	Min    int     `yaml:"min"`
	Max    int     `yaml:"max"`
}

func (h *Histogram) Stats() Stats {
	levels := make([]float64, Levels)
	weights := make([]float64, Levels)
	s := Stats{Min: -1, Max: -1}
	for i, c := range h {
		levels[i] = float64(i)
		weights[i] = float64(c)
		if c > 0 {
			if s.Min < 0 {
				s.Min = i
			}
			s.Max = i
		}
	}
	if s.Min < 0 {
		return Stats{}
	}
	s.Mean = stat.Mean(levels, weights)
	if h.Total() > 1 {
		s.StdDev = stat.StdDev(levels, weights)
	}
	return s
}

package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"otsu-labeler/internal/raster"
)

func TestBuildSumsToArea(t *testing.T) {
	r := raster.New(raster.Dimensions{Rows: 120, Cols: 160})
	for i := range r.Pix {
		r.Pix[i] = uint8((i * 7) % 256)
	}

	h := Build(r)
	assert.Equal(t, 19200, h.Total())
	assert.Equal(t, 75, h[0])
}

func TestBuildCountsLevels(t *testing.T) {
	r, _ := raster.FromPix(raster.Dimensions{Rows: 2, Cols: 2}, []uint8{3, 3, 200, 0})
	h := Build(r)

	assert.Equal(t, 2, h[3])
	assert.Equal(t, 1, h[200])
	assert.Equal(t, 1, h[0])
	assert.Equal(t, float64(206), h.WeightedSum())
}

func TestStats(t *testing.T) {
	r, _ := raster.FromPix(raster.Dimensions{Rows: 1, Cols: 4}, []uint8{10, 10, 30, 30})
	h := Build(r)
	s := h.Stats()

	assert.Equal(t, 10, s.Min)
	assert.Equal(t, 30, s.Max)
	assert.InDelta(t, 20.0, s.Mean, 1e-9)
	assert.Greater(t, s.StdDev, 0.0)

	var empty Histogram
	assert.Equal(t, Stats{}, empty.Stats())
}

package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPixRejectsWrongLength(t *testing.T) {
	_, err := FromPix(Dimensions{Rows: 2, Cols: 3}, make([]uint8, 5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	r, err := FromPix(Dimensions{Rows: 2, Cols: 3}, []uint8{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, uint8(6), r.At(1, 2))
	assert.Equal(t, uint8(2), r.At(0, 1))
}

func TestDimensions(t *testing.T) {
	d := Dimensions{Rows: 120, Cols: 160}
	assert.Equal(t, 19200, d.Area())
	assert.Equal(t, "160x120", d.String())
	assert.True(t, d.Contains(0, 0))
	assert.True(t, d.Contains(119, 159))
	assert.False(t, d.Contains(120, 0))
	assert.False(t, d.Contains(0, -1))
	assert.Error(t, Dimensions{Rows: 0, Cols: 3}.Validate())
}

func TestCloneIsIndependent(t *testing.T) {
	r := New(Dimensions{Rows: 2, Cols: 2})
	c := r.Clone()
	c.Set(0, 0, Foreground)

	assert.Equal(t, Background, r.At(0, 0))
	assert.False(t, r.Equal(c))
	require.NoError(t, r.CopyFrom(c))
	assert.True(t, r.Equal(c))

	err := r.CopyFrom(New(Dimensions{Rows: 3, Cols: 2}))
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestIsBinaryAndCount(t *testing.T) {
	r := New(Dimensions{Rows: 1, Cols: 4})
	r.Pix = []uint8{0, 255, 255, 0}
	assert.True(t, r.IsBinary())
	assert.Equal(t, 2, r.Count(Foreground))

	r.Set(0, 0, 80)
	assert.False(t, r.IsBinary())
}

func TestGrayRoundTrip(t *testing.T) {
	r := New(Dimensions{Rows: 2, Cols: 3})
	copy(r.Pix, []uint8{10, 20, 30, 40, 50, 60})

	g := r.ToGray()
	assert.Equal(t, image.Rect(0, 0, 3, 2), g.Bounds())
	assert.Equal(t, color.Gray{Y: 60}, g.GrayAt(2, 1))
	assert.True(t, r.Equal(FromImage(g)))
}

func TestFromImageConvertsColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 6))
	img.Set(5, 5, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	r := FromImage(img)
	assert.Equal(t, Dimensions{Rows: 1, Cols: 2}, r.Dims())
	assert.Equal(t, uint8(255), r.At(0, 0))
	assert.Equal(t, uint8(0), r.At(0, 1))
}

func TestVisitedMask(t *testing.T) {
	v := NewVisitedMask(Dimensions{Rows: 2, Cols: 2})
	v.Mark(1, 0)
	assert.True(t, v.Visited(1, 0))
	assert.False(t, v.Visited(0, 1))
	assert.Equal(t, 1, v.Count())

	v.Reset()
	assert.Equal(t, 0, v.Count())
	assert.False(t, v.Visited(1, 0))
}

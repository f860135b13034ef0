// Package raster holds the single-channel 8-bit grids the segmentation
// pipeline reads and mutates.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

const (
	Background uint8 = 0
	Foreground uint8 = 255
)

// ErrDimensionMismatch reports a pixel buffer or peer raster whose size
// disagrees with the expected dimensions.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Dimensions is the row/column extent shared by every buffer of one run.
type Dimensions struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

func (d Dimensions) Area() int {
	return d.Rows * d.Cols
}

func (d Dimensions) Contains(row, col int) bool {
	return row >= 0 && row < d.Rows && col >= 0 && col < d.Cols
}

func (d Dimensions) Validate() error {
	if d.Rows <= 0 || d.Cols <= 0 {
		return fmt.Errorf("invalid dimensions %s", d)
	}
	return nil
}

// String renders the extent the way image headers do: width first.
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Cols, d.Rows)
}

// Raster is a row-major grid of intensity samples.
type Raster struct {
	dims Dimensions
	Pix  []uint8
}

func New(dims Dimensions) *Raster {
	return &Raster{dims: dims, Pix: make([]uint8, dims.Area())}
}

// FromPix wraps pix without copying. The raster owns the slice afterwards.
func FromPix(dims Dimensions, pix []uint8) (*Raster, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if len(pix) != dims.Area() {
		return nil, fmt.Errorf("%w: %d samples for %s raster", ErrDimensionMismatch, len(pix), dims)
	}
	return &Raster{dims: dims, Pix: pix}, nil
}

func (r *Raster) Dims() Dimensions { return r.dims }
func (r *Raster) Rows() int        { return r.dims.Rows }
func (r *Raster) Cols() int        { return r.dims.Cols }

func (r *Raster) At(row, col int) uint8 {
	return r.Pix[row*r.dims.Cols+col]
}

func (r *Raster) Set(row, col int, v uint8) {
	r.Pix[row*r.dims.Cols+col] = v
}

func (r *Raster) Clone() *Raster {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{dims: r.dims, Pix: pix}
}

// CopyFrom overwrites r with src. Both must share dimensions.
func (r *Raster) CopyFrom(src *Raster) error {
	if r.dims != src.dims {
		return fmt.Errorf("%w: copy %s into %s", ErrDimensionMismatch, src.dims, r.dims)
	}
	copy(r.Pix, src.Pix)
	return nil
}

func (r *Raster) Equal(o *Raster) bool {
	if o == nil || r.dims != o.dims {
		return false
	}
	for i := range r.Pix {
		if r.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

func (r *Raster) Fill(v uint8) {
	for i := range r.Pix {
		r.Pix[i] = v
	}
}

// Count returns how many cells hold v.
func (r *Raster) Count(v uint8) int {
	n := 0
	for _, p := range r.Pix {
		if p == v {
			n++
		}
	}
	return n
}

// IsBinary reports whether every cell is Background or Foreground.
func (r *Raster) IsBinary() bool {
	for _, p := range r.Pix {
		if p != Background && p != Foreground {
			return false
		}
	}
	return true
}

// ToGray shares no memory with r.
func (r *Raster) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.dims.Cols, r.dims.Rows))
	for row := 0; row < r.dims.Rows; row++ {
		copy(img.Pix[row*img.Stride:row*img.Stride+r.dims.Cols], r.Pix[row*r.dims.Cols:(row+1)*r.dims.Cols])
	}
	return img
}

// FromImage converts any decoded image to luminance.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	gray, ok := img.(*image.Gray)
	if !ok {
		gray = image.NewGray(b)
		draw.Draw(gray, b, img, b.Min, draw.Src)
	}

	r := New(Dimensions{Rows: b.Dy(), Cols: b.Dx()})
	for row := 0; row < b.Dy(); row++ {
		off := gray.PixOffset(b.Min.X, b.Min.Y+row)
		copy(r.Pix[row*b.Dx():(row+1)*b.Dx()], gray.Pix[off:off+b.Dx()])
	}
	return r
}

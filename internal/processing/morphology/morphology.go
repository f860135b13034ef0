// Package morphology implements 4-neighbourhood erosion and dilation of
// binary masks. Both read a snapshot of the source and write a separate
// destination, so no decision within a pass sees a cell already changed by
// that pass.
package morphology

import (
	"fmt"

	"otsu-labeler/internal/raster"
)

var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// hasNeighbour reports whether an in-bounds 4-neighbour of (row, col) holds want.
func hasNeighbour(src *raster.Raster, row, col int, want uint8) bool {
	dims := src.Dims()
	for _, d := range neighbours {
		r, c := row+d[0], col+d[1]
		if dims.Contains(r, c) && src.At(r, c) == want {
			return true
		}
	}
	return false
}

// ErodeInto writes into dst the erosion of src: a foreground cell with any
// background 4-neighbour becomes background. Out-of-bounds neighbours never
// trigger erosion.
func ErodeInto(dst, src *raster.Raster) error {
	return transform(dst, src, raster.Foreground, raster.Background)
}

// DilateInto writes into dst the dilation of src: a background cell with any
// foreground 4-neighbour becomes foreground.
func DilateInto(dst, src *raster.Raster) error {
	return transform(dst, src, raster.Background, raster.Foreground)
}

func Erode(src *raster.Raster) *raster.Raster {
	dst := raster.New(src.Dims())
	_ = ErodeInto(dst, src)
	return dst
}

func Dilate(src *raster.Raster) *raster.Raster {
	dst := raster.New(src.Dims())
	_ = DilateInto(dst, src)
	return dst
}

// Open erodes then dilates.
func Open(src *raster.Raster) *raster.Raster {
	return Dilate(Erode(src))
}

func transform(dst, src *raster.Raster, from, to uint8) error {
	if dst == src {
		return fmt.Errorf("morphology needs distinct source and destination buffers")
	}
	if err := dst.CopyFrom(src); err != nil {
		return err
	}

	rows, cols := src.Rows(), src.Cols()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if src.At(row, col) == from && hasNeighbour(src, row, col, to) {
				dst.Set(row, col, to)
			}
		}
	}
	return nil
}

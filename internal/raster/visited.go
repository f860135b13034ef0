package raster

// VisitedMask tracks which cells a traversal pass has already claimed.
type VisitedMask struct {
	dims  Dimensions
	cells []bool
}

func NewVisitedMask(dims Dimensions) *VisitedMask {
	return &VisitedMask{dims: dims, cells: make([]bool, dims.Area())}
}

func (v *VisitedMask) Dims() Dimensions { return v.dims }

func (v *VisitedMask) Visited(row, col int) bool {
	return v.cells[row*v.dims.Cols+col]
}

func (v *VisitedMask) Mark(row, col int) {
	v.cells[row*v.dims.Cols+col] = true
}

// Reset clears every cell so the mask can back a new pass.
func (v *VisitedMask) Reset() {
	for i := range v.cells {
		v.cells[i] = false
	}
}

func (v *VisitedMask) Count() int {
	n := 0
	for _, c := range v.cells {
		if c {
			n++
		}
	}
	return n
}

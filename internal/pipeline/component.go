package pipeline

import (
	"otsu-labeler/internal/processing/floodfill"
)

// BoundingBox is inclusive on all four sides.
type BoundingBox struct {
	Top    int `yaml:"top"`
	Left   int `yaml:"left"`
	Bottom int `yaml:"bottom"`
	Right  int `yaml:"right"`
}

// Component is the record of one 4-connected region, created by the count
// pass and coloured by the colour pass.
type Component struct {
	Label       int         `yaml:"label"`
	Color       uint8       `yaml:"color"`
	SeedRow     int         `yaml:"seed_row"`
	SeedCol     int         `yaml:"seed_col"`
	Area        int         `yaml:"area"`
	Bounds      BoundingBox `yaml:"bounds"`
	CentroidRow float64     `yaml:"centroid_row"`
	CentroidCol float64     `yaml:"centroid_col"`
}

func newComponent(label, row, col int, region floodfill.Region) Component {
	cr, cc := region.Centroid()
	return Component{
		Label:   label,
		SeedRow: row,
		SeedCol: col,
		Area:    region.Area,
		Bounds: BoundingBox{
			Top:    region.Bounds.Min.Y,
			Left:   region.Bounds.Min.X,
			Bottom: region.Bounds.Max.Y - 1,
			Right:  region.Bounds.Max.X - 1,
		},
		CentroidRow: cr,
		CentroidCol: cc,
	}
}

// Overflow records a fill that dropped queue pushes.
type Overflow struct {
	Pass     string `yaml:"pass"`
	SeedRow  int    `yaml:"seed_row"`
	SeedCol  int    `yaml:"seed_col"`
	Dropped  int    `yaml:"dropped"`
	Capacity int    `yaml:"capacity"`
}

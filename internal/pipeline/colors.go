package pipeline

const (
	// ColorFloor is the lowest label intensity and the wrap-around point.
	ColorFloor = 40
	// ColorCeiling is never emitted: reaching it wraps back to ColorFloor.
	ColorCeiling = 255
)

// ColorRamp spreads label intensities evenly over (ColorFloor, ColorCeiling)
// for a known number of components.
type ColorRamp struct {
	rate   int
	cursor int
}

// NewColorRamp sizes the step for components regions. A count below one is
// treated as one.
func NewColorRamp(components int) *ColorRamp {
	return &ColorRamp{
		rate:   (ColorCeiling - ColorFloor) / max(components, 1),
		cursor: ColorFloor,
	}
}

func (c *ColorRamp) Rate() int { return c.rate }

// Next advances the cursor and returns the colour for the next region.
func (c *ColorRamp) Next() uint8 {
	c.cursor += c.rate
	if c.cursor >= ColorCeiling {
		c.cursor = ColorFloor
	}
	return uint8(c.cursor)
}

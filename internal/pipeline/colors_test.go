package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorRampSingleComponentWraps(t *testing.T) {
	ramp := NewColorRamp(1)
	assert.Equal(t, 215, ramp.Rate())
	// 40+215 reaches the ceiling and wraps.
	assert.Equal(t, uint8(40), ramp.Next())
}

func TestColorRampZeroComponentsDoesNotDivideByZero(t *testing.T) {
	assert.Equal(t, 215, NewColorRamp(0).Rate())
}

func TestColorRampSpreadsColors(t *testing.T) {
	ramp := NewColorRamp(4)
	assert.Equal(t, 53, ramp.Rate())

	var got []uint8
	for i := 0; i < 5; i++ {
		got = append(got, ramp.Next())
	}
	assert.Equal(t, []uint8{93, 146, 199, 252, 40}, got)
}

func TestColorRampStaysInRange(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 100, 215, 300} {
		ramp := NewColorRamp(n)
		for i := 0; i < n; i++ {
			c := ramp.Next()
			assert.GreaterOrEqual(t, int(c), ColorFloor)
			assert.Less(t, int(c), ColorCeiling)
		}
	}
}

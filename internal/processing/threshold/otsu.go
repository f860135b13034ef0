package threshold

import (
	"otsu-labeler/internal/processing/histogram"
)

// Otsu returns the level t maximising the between-class variance of
// {levels <= t} and {levels > t}. The first maximum wins; a histogram
// with a single populated level yields 0.
func Otsu(h *histogram.Histogram, total int) int {
	sum := h.WeightedSum()

	var (
		weightBack int
		sumBack    float64
		varMax     float64
		best       int
	)
	for i := 0; i < histogram.Levels; i++ {
		weightBack += h[i]
		sumBack += float64(i) * float64(h[i])
		if weightBack == 0 {
			continue
		}
		weightFore := total - weightBack
		if weightFore <= 0 {
			break
		}

		meanBack := sumBack / float64(weightBack)
		meanFore := (sum - sumBack) / float64(weightFore)
		diff := meanBack - meanFore

		between := float64(weightBack) * float64(weightFore) * diff * diff
		if between > varMax {
			varMax = between
			best = i
		}
	}
	return best
}

package threshold

import (
	"otsu-labeler/internal/raster"
)

// Binarize maps every sample >= t to Foreground and the rest to Background.
func Binarize(src *raster.Raster, t int) *raster.Raster {
	dst := raster.New(src.Dims())
	for i, p := range src.Pix {
		if int(p) >= t {
			dst.Pix[i] = raster.Foreground
		}
	}
	return dst
}

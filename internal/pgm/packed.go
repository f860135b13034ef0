package pgm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"otsu-labeler/internal/raster"
)

// DecodePacked reads a one-bit-per-pixel mask written as whitespace
// separated decimal bytes. Pixel i lives in bit i%8 (least significant
// first) of byte i/8; set bits become Foreground.
func DecodePacked(r io.Reader, dims raster.Dimensions) (*raster.Raster, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	need := (dims.Area() + 7) / 8
	packed := make([]uint8, 0, need)

	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for len(packed) < need && sc.Scan() {
		v, err := strconv.Atoi(sc.Text())
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("invalid packed byte %d: %q", len(packed), sc.Text())
		}
		packed = append(packed, uint8(v))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read packed data: %w", err)
	}
	if len(packed) < need {
		return nil, fmt.Errorf("%w: %d of %d packed bytes present", raster.ErrDimensionMismatch, len(packed), need)
	}

	out := raster.New(dims)
	for i := range out.Pix {
		if packed[i/8]>>(i%8)&1 == 1 {
			out.Pix[i] = raster.Foreground
		}
	}
	return out, nil
}

// Package reference re-derives the threshold and component count with
// OpenCV so the pure-Go pipeline can be checked against an independent
// implementation.
package reference

import (
	"fmt"

	"gocv.io/x/gocv"

	"otsu-labeler/internal/pipeline"
	"otsu-labeler/internal/raster"
)

type Comparison struct {
	Threshold        int
	OpenCVThreshold  int
	Components       int
	OpenCVComponents int
}

func (c Comparison) ThresholdsAgree() bool { return c.Threshold == c.OpenCVThreshold }
func (c Comparison) ComponentsAgree() bool { return c.Components == c.OpenCVComponents }

// Compare checks res, produced from input, against OpenCV.
func Compare(input *raster.Raster, res *pipeline.Result) (Comparison, error) {
	cmp := Comparison{
		Threshold:  res.Threshold,
		Components: res.ComponentCount(),
	}

	t, err := OtsuThreshold(input)
	if err != nil {
		return cmp, err
	}
	cmp.OpenCVThreshold = t

	n, err := CountComponents(res.Mask)
	if err != nil {
		return cmp, err
	}
	cmp.OpenCVComponents = n

	return cmp, nil
}

// OtsuThreshold runs cv::threshold with THRESH_OTSU.
func OtsuThreshold(r *raster.Raster) (int, error) {
	src, err := toMat(r)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	t := gocv.Threshold(src, &dst, 0, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)
	return int(t), nil
}

// CountComponents counts 4-connected non-zero regions of mask.
func CountComponents(mask *raster.Raster) (int, error) {
	if !mask.IsBinary() {
		return 0, fmt.Errorf("component count needs a binary mask")
	}

	src, err := toMat(mask)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	labels := gocv.NewMat()
	defer labels.Close()

	n := gocv.ConnectedComponentsWithParams(src, &labels, 4, gocv.MatTypeCV32S, gocv.CCL_DEFAULT)
	// Label 0 is the background.
	return max(n-1, 0), nil
}

func toMat(r *raster.Raster) (gocv.Mat, error) {
	mat, err := gocv.NewMatFromBytes(r.Rows(), r.Cols(), gocv.MatTypeCV8UC1, r.Clone().Pix)
	if err != nil {
		return mat, fmt.Errorf("failed to create Mat from %s raster: %w", r.Dims(), err)
	}
	if mat.Empty() {
		mat.Close()
		return mat, fmt.Errorf("empty Mat for %s raster", r.Dims())
	}
	return mat, nil
}

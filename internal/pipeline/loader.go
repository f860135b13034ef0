package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"otsu-labeler/internal/logger"
	"otsu-labeler/internal/pgm"
	"otsu-labeler/internal/raster"
)

// ErrResourceUnavailable reports an input or output that could not be
// opened. Callers treat it as fatal.
var ErrResourceUnavailable = errors.New("resource unavailable")

type ImageLoader struct {
	dims   raster.Dimensions
	format string
	logger logger.Logger
}

// NewImageLoader reads rasters of dims. format is "auto", "pgm", "packed"
// or "image"; auto picks by file extension.
func NewImageLoader(dims raster.Dimensions, format string, log logger.Logger) *ImageLoader {
	if log == nil {
		log = logger.NewNop()
	}
	return &ImageLoader{dims: dims, format: strings.ToLower(format), logger: log}
}

func (l *ImageLoader) Load(path string) (*raster.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	defer f.Close()

	format := l.determineActualFormat(path)
	l.logger.Debug("ImageLoader", "loading image", map[string]interface{}{
		"path":   path,
		"format": format,
	})

	r, err := l.decode(bufio.NewReader(f), format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	l.logger.Info("ImageLoader", "image loaded", map[string]interface{}{
		"path":       path,
		"format":     format,
		"dimensions": r.Dims().String(),
	})
	return r, nil
}

func (l *ImageLoader) decode(r io.Reader, format string) (*raster.Raster, error) {
	switch format {
	case "packed":
		return pgm.DecodePacked(r, l.dims)
	case "image":
		img, _, err := image.Decode(r)
		if err != nil {
			return nil, err
		}
		return raster.FromImage(img), nil
	default:
		return pgm.Decode(r, l.dims)
	}
}

func (l *ImageLoader) determineActualFormat(path string) string {
	if l.format != "" && l.format != "auto" {
		return l.format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pgm":
		return "pgm"
	case ".txt", ".bits":
		return "packed"
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return "image"
	default:
		return "pgm"
	}
}

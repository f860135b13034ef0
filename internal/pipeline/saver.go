package pipeline

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"otsu-labeler/internal/logger"
	"otsu-labeler/internal/pgm"
	"otsu-labeler/internal/raster"
)

// OutputMode is the permission set on every written raster.
const OutputMode os.FileMode = 0o644

type ImageSaver struct {
	format pgm.Format
	logger logger.Logger
}

func NewImageSaver(format pgm.Format, log logger.Logger) *ImageSaver {
	if log == nil {
		log = logger.NewNop()
	}
	return &ImageSaver{format: format, logger: log}
}

// Save writes r to path. Nothing appears at path unless the whole raster
// was encoded: data goes to a temporary sibling that is renamed on success.
func (s *ImageSaver) Save(path string, r *raster.Raster) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	err = s.SaveToWriter(tmp, r, saveFormat(path))
	// CreateTemp makes the file owner-only; outputs are world-readable.
	err = multierr.Append(err, tmp.Chmod(OutputMode))
	err = multierr.Append(err, tmp.Close())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path":       path,
		"dimensions": r.Dims().String(),
	})
	return nil
}

func (s *ImageSaver) SaveToWriter(w io.Writer, r *raster.Raster, format string) error {
	switch format {
	case "png":
		return png.Encode(w, r.ToGray())
	default:
		return pgm.Encode(w, r, s.format)
	}
}

func saveFormat(path string) string {
	if strings.ToLower(filepath.Ext(path)) == ".png" {
		return "png"
	}
	return "pgm"
}

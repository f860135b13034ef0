package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otsu-labeler/internal/logger"
	"otsu-labeler/internal/pgm"
	"otsu-labeler/internal/processing/floodfill"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 19200, cfg.Dimensions.Area())
	assert.Equal(t, floodfill.Grow, cfg.Policy())
	assert.Equal(t, pgm.Binary, cfg.Format())
	assert.Equal(t, "out.pgm", cfg.OutputPath)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labeler.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dimensions:
  rows: 60
  cols: 80
queue_capacity: 100
overflow_policy: report
output_format: ascii
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 60, cfg.Dimensions.Rows)
	assert.Equal(t, 80, cfg.Dimensions.Cols)
	assert.Equal(t, 100, cfg.QueueCapacity)
	assert.Equal(t, floodfill.Report, cfg.Policy())
	assert.Equal(t, pgm.ASCII, cfg.Format())
	assert.Equal(t, DefaultInterimColor, cfg.InterimColor)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dimensions: [oops"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Default()
	cfg.Dimensions.Rows = 0
	cfg.QueueCapacity = -1
	cfg.OverflowPolicy = "drop"
	cfg.InterimColor = 255
	cfg.InputFormat = "raw"
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"invalid dimensions", "queue_capacity", "overflow policy", "interim_color", "input_format", "log_format"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "1")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, logger.DebugLevel, cfg.Level())
}

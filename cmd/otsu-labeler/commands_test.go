package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otsu-labeler/internal/pgm"
	"otsu-labeler/internal/pipeline"
	"otsu-labeler/internal/raster"
)

// twoBlobs writes a 10x8 frame with two separate 3x3 bright squares.
func twoBlobs(t *testing.T, dir string) string {
	t.Helper()

	r := raster.New(raster.Dimensions{Rows: 8, Cols: 10})
	r.Fill(10)
	for row := 2; row <= 4; row++ {
		for col := 1; col <= 3; col++ {
			r.Set(row, col, 200)
			r.Set(row, col+5, 200)
		}
	}

	path := filepath.Join(dir, "frame.pgm")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, pgm.Encode(f, r, pgm.Binary))
	require.NoError(t, f.Close())
	return path
}

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app.Writer = &out
	app.Reader = strings.NewReader(stdin)
	t.Setenv("LOG_LEVEL", "error")

	err := app.Run(append([]string{AppName, "--rows", "8", "--cols", "10"}, args...))
	return out.String(), err
}

func TestRunWritesOutputAndReport(t *testing.T) {
	dir := t.TempDir()
	in := twoBlobs(t, dir)
	out := filepath.Join(dir, "labels.pgm")
	rep := filepath.Join(dir, "report.yaml")

	stdout, err := runApp(t, "", "run", "-o", out, "--report", rep, in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 components")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("P5\n10 8\n255\n")))
	assert.Len(t, data, pgm.HeaderSize(raster.Dimensions{Rows: 8, Cols: 10})+80)

	report, err := os.ReadFile(rep)
	require.NoError(t, err)
	assert.Contains(t, string(report), "component_count: 2")
}

func TestRunPromptsForInput(t *testing.T) {
	dir := t.TempDir()
	in := twoBlobs(t, dir)
	out := filepath.Join(dir, "labels.pgm")

	stdout, err := runApp(t, in+"\n", "run", "-o", out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "input file: "))
	assert.FileExists(t, out)
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "labels.pgm")

	_, err := runApp(t, "", "run", "-o", out, filepath.Join(dir, "absent.pgm"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipeline.ErrResourceUnavailable))
	assert.NoFileExists(t, out)
}

func TestRunRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	in := twoBlobs(t, dir)

	_, err := runApp(t, "", "--overflow-policy", "drop", "run", "-o", filepath.Join(dir, "x.pgm"), in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestPromptInputEmpty(t *testing.T) {
	var out bytes.Buffer
	_, err := promptInput(strings.NewReader("\n"), &out)
	assert.True(t, errors.Is(err, pipeline.ErrResourceUnavailable))
	assert.Equal(t, "input file: ", out.String())

	name, err := promptInput(strings.NewReader("  frame.pgm"), &out)
	require.NoError(t, err)
	assert.Equal(t, "frame.pgm", name)
}

package pipeline

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReportSummarisesRun(t *testing.T) {
	in := grid(t,
		".........",
		".###.###.",
		".###.###.",
		".###.###.",
		".........",
	)
	res, err := NewSegmenter(DefaultOptions(), nil).Run(context.Background(), in)
	require.NoError(t, err)

	rep := NewReport("two.pgm", res)
	assert.Equal(t, 2, rep.ComponentCount)
	assert.Equal(t, 10, rep.ForegroundPixels)
	assert.InDelta(t, 5.0, rep.AreaMean, 1e-9)
	assert.InDelta(t, 0.0, rep.AreaStdDev, 1e-9)

	var total time.Duration
	for _, st := range rep.Stages {
		total += st.Duration
	}
	assert.Equal(t, total, rep.Elapsed)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, rep))
	assert.Contains(t, buf.String(), "component_count: 2")

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "two.pgm", decoded["input"])
	assert.NotContains(t, decoded, "overflows")
	assert.Contains(t, decoded, "elapsed")
}

func TestReportWithoutComponents(t *testing.T) {
	res, err := NewSegmenter(DefaultOptions(), nil).Run(context.Background(), grid(t, "...", "..."))
	require.NoError(t, err)

	rep := NewReport("empty.pgm", res)
	assert.Zero(t, rep.ComponentCount)
	assert.Zero(t, rep.AreaMean)
}

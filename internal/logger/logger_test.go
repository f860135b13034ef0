package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologAdapterWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, DebugLevel)

	log.Info("Segmenter", "threshold selected", map[string]interface{}{"threshold": 97})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Segmenter", entry["component"])
	assert.Equal(t, "threshold selected", entry["message"])
	assert.EqualValues(t, 97, entry["threshold"])
}

func TestZerologAdapterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, WarnLevel)

	log.Debug("c", "hidden", nil)
	log.Info("c", "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Error("c", errors.New("boom"), nil)
	assert.Contains(t, buf.String(), "boom")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, WarnLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "debug", DebugLevel.String())
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "")
	assert.Equal(t, ErrorLevel, LevelFromEnv(ErrorLevel))

	t.Setenv("DEBUG", "1")
	assert.Equal(t, DebugLevel, LevelFromEnv(InfoLevel))

	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, ErrorLevel, LevelFromEnv(InfoLevel))
}

func TestZerologAdapterErrorCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, InfoLevel)

	log.Error("ImageSaver", errors.New("disk full"), map[string]interface{}{"path": "out.pgm"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "ImageSaver", entry["component"])
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, "out.pgm", entry["path"])
}

func TestNopLoggerAcceptsNilFields(t *testing.T) {
	log := NewNop()
	assert.NotPanics(t, func() {
		log.Info("c", "m", nil)
		log.Error("c", errors.New("x"), nil)
	})
}

package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologAdapter satisfies Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	zl zerolog.Logger
}

func NewZerolog(w io.Writer, level LogLevel) *ZerologAdapter {
	return &ZerologAdapter{
		zl: zerolog.New(w).Level(level.zerolog()).With().Timestamp().Logger(),
	}
}

// NewConsoleLogger writes human-readable lines to stderr.
func NewConsoleLogger(level LogLevel) *ZerologAdapter {
	return NewZerolog(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}, level)
}

// NewNop discards everything.
func NewNop() *ZerologAdapter {
	return &ZerologAdapter{zl: zerolog.Nop()}
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	emit(z.zl.Debug(), component, fields, message)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	emit(z.zl.Info(), component, fields, message)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	emit(z.zl.Warn(), component, fields, message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	emit(z.zl.Error().Err(err), component, fields, "operation failed")
}

// emit is a no-op for events below the logger's level, which zerolog
// signals with a nil event.
func emit(event *zerolog.Event, component string, fields map[string]interface{}, message string) {
	if event == nil {
		return
	}
	event.Str("component", component).Fields(fields).Msg(message)
}

// Package logging wraps zerolog behind the loosely typed key/value
// call style the pipeline stages log in.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a thin veneer over zerolog.Logger. Field arguments are
// alternating key/value pairs; zerolog drops malformed pairs instead
// of failing.
type Logger struct {
	zl zerolog.Logger
}

var global = NewDevelopment()

// NewDevelopment returns a console logger at debug level, the default
// until SetGlobal installs a configured one.
func NewDevelopment() *Logger {
	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return &Logger{zl: zerolog.New(out).Level(zerolog.DebugLevel).With().Timestamp().Logger()}
}

// NewWithWriter returns a logger writing to w at the given level.
func NewWithWriter(w io.Writer, level zerolog.Level) *Logger {
	return &Logger{zl: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// SetGlobal installs the process-wide logger.
func SetGlobal(l *Logger) {
	global = l
}

// Global returns the process-wide logger.
func Global() *Logger {
	return global
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.zl.Error().Fields(fields).Msg(msg)
}

// Fatal logs the message and exits the process.
func (l *Logger) Fatal(msg string, fields ...interface{}) {
	l.zl.Fatal().Fields(fields).Msg(msg)
}

// With returns a child logger that attaches the given fields to every
// entry.
func (l *Logger) With(fields ...interface{}) *Logger {
	return &Logger{zl: l.zl.With().Fields(fields).Logger()}
}

// WithContext returns a child logger carrying request-scoped fields
// from ctx, currently the pipeline run ID.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if runID := RunID(ctx); runID != "" {
		return l.With("run_id", runID)
	}
	return l
}

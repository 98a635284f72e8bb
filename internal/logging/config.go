package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/powercastio/powercast/internal/config"
)

// NewFromConfig builds the process logger described by the logging
// section of params.yaml. Level and format strings are validated by
// config.Load before they reach here.
func NewFromConfig(cfg config.LoggingConfig) (*Logger, error) {
	out, err := openSink(cfg.OutputPath)
	if err != nil {
		return nil, err
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: consoleTimeFormat(cfg.TimeFormat)}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return &Logger{zl: zerolog.New(out).Level(level).With().Timestamp().Logger()}, nil
}

// openSink maps the configured output path to a writer. Anything that
// is not stdout or stderr is treated as a file path and opened for
// append.
func openSink(path string) (io.Writer, error) {
	switch path {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}

func consoleTimeFormat(name string) string {
	switch name {
	case "Kitchen":
		return time.Kitchen
	case "Unix":
		return time.UnixDate
	default:
		return time.RFC3339
	}
}

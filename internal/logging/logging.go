// Package logging builds the zerolog loggers used by folio and folio-devstore.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the log encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// ParseFormat maps a config value onto a Format. Unknown values fall back to JSON.
func ParseFormat(value string) Format {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "console":
		return FormatConsole
	default:
		return FormatJSON
	}
}

// Config holds the configuration for a logger.
type Config struct {
	// Level is the log level (trace, debug, info, warn, error). Invalid or
	// empty values fall back to info.
	Level string
	// Format is the log format (json, console).
	Format Format
	// Output is the destination writer (default: os.Stderr).
	Output io.Writer
	// TimeFormat is the timestamp layout (default: time.RFC3339).
	TimeFormat string
}

// ParseLevel resolves a level name, defaulting to info.
func ParseLevel(value string) zerolog.Level {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(trimmed)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// New returns a logger for cfg. It does not touch zerolog's global logger.
func New(cfg Config) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	level := ParseLevel(cfg.Level)
	if cfg.Format == FormatConsole {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: timeFormat,
		}).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(output).Level(level).Hook(timestampHook(timeFormat))
}

// timestampHook stamps JSON events with a per-logger layout, leaving
// zerolog.TimeFieldFormat alone.
type timestampHook string

func (h timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, time.Now().Format(string(h)))
}

// OpenFile opens path for appending, creating parent directories as needed.
func OpenFile(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// Package logging configures the zerolog logger shared by the application.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// LogFileName is the log file written into the config directory
const LogFileName = "iptv-player.log"

// New creates a logger writing to w at the given level
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Init creates a logger writing human readable lines to stderr and JSON
// lines to dir/LogFileName. The returned closer releases the log file.
func Init(dir string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return New(console, level), nopCloser{}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return New(console, level), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}

	return New(zerolog.MultiLevelWriter(console, f), level), f, nil
}

// ParseLevel parses a level name, falling back to info
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Package logging builds the charmbracelet/log logger used by the services.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/xvierd/todo-cli/internal/config"
)

// Off disables logging when used as the log file.
const Off = "off"

const prefix = "todo"

// ParseLevel parses a string log level to a charmbracelet/log Level.
// Unknown values fall back to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name to a charmbracelet/log Formatter.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// NewWithWriter returns a logger writing to w with the configured level and
// formatter.
func NewWithWriter(w io.Writer, cfg config.LoggingConfig) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(cfg.Level),
		Formatter:       ParseFormatter(cfg.Format),
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// New opens the configured log file and returns a logger writing to it.
// The screen owns stdout, so there is no console option. The returned
// closer must be closed once the screen exits; it is nil when logging is off.
func New(cfg config.LoggingConfig) (*log.Logger, io.Closer, error) {
	path := strings.TrimSpace(cfg.File)
	if path == "" || strings.EqualFold(path, Off) {
		return NewWithWriter(io.Discard, cfg), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return NewWithWriter(f, cfg), f, nil
}

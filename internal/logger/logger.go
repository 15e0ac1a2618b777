// Package logger builds the slog loggers used by the qsim command, backed by
// charmbracelet/log.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix is printed before every line.
const Prefix = "qsim"

// New creates a slog logger writing charm-formatted text to w at the given
// level ("debug", "info", "warn", "error"). An empty level means info.
func New(level string, w io.Writer) (*slog.Logger, error) {
	return NewWithFormat(level, "text", w)
}

// NewWithFormat is New with a choice of "text", "json" or "logfmt" output.
func NewWithFormat(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl := log.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	var formatter log.Formatter
	switch strings.ToLower(format) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           lvl,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       formatter,
	})
	return slog.New(handler), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

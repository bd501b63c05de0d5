// Package logging builds the service-wide structured JSON logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewJSONLogger returns a JSON slog logger writing to stdout, tagged with
// the service name.
func NewJSONLogger(service, level string) *slog.Logger {
	return NewJSONLoggerTo(os.Stdout, service, level)
}

// NewJSONLoggerTo is NewJSONLogger with an explicit sink.
func NewJSONLoggerTo(w io.Writer, service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler).With("service", service)
}

// ParseLevel maps a config level string to a slog level; anything
// unrecognized falls back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

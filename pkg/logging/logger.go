// Package logging provides the structured logger used across the termio
// services. Output is JSON on stdout so the log pipeline can ingest it
// without extra parsing.
package logging

import (
	"log/slog"
	"os"
)

// Logger is a thin wrapper around slog.Logger shared by handlers, the
// booking engine and the provider clients.
type Logger struct {
	*slog.Logger
}

// New creates a logger at the given level. Level strings match the
// LOG_LEVEL config values; anything unrecognized falls back to info.
func New(level string) *Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	return &Logger{Logger: slog.New(handler)}
}

// Default returns an info-level logger. Constructors use it when a caller
// passes nil.
func Default() *Logger {
	return New("info")
}

// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel reads a level name case-insensitively. ok is false for an
// unknown name, in which case info is returned.
func ParseLevel(name string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level string) *slog.Logger {
	lvl, ok := ParseLevel(level)
	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	if !ok {
		l.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
	}
	return l
}

// Setup installs a JSON logger writing to w as the slog default. Commands
// pass stderr so that stdout carries only their output.
func Setup(w io.Writer, level string) *slog.Logger {
	l := New(w, level)
	slog.SetDefault(l)
	return l
}

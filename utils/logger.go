package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger is a printf-style leveled logger backed by log/slog.
type Logger struct {
	slog *slog.Logger
}

// LevelFor maps verbosity flags to a slog level. Quiet wins over verbose.
func LevelFor(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates an INFO-level Logger writing to stderr.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stderr, slog.LevelInfo)
}

// NewLoggerTo creates a Logger writing text records at or above level to w.
func NewLoggerTo(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{slog: slog.New(handler)}
}

// Enabled reports whether records at level would be written.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.slog.Enabled(context.Background(), level)
}

func (l *Logger) Info(format string, args ...any) {
	l.slog.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.slog.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.slog.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.Enabled(slog.LevelDebug) {
		return
	}
	l.slog.Debug(fmt.Sprintf(format, args...))
}

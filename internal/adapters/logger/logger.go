// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Logger implements ports.Logger on log/slog. Errors are logged through
// zerr.Log, so metadata attached with zerr.With comes out as structured
// fields instead of a flattened message.
type Logger struct {
	slogger atomic.Pointer[slog.Logger]
}

// New creates a new Logger writing human-readable output to stderr.
func New() ports.Logger {
	return NewWriting(os.Stderr)
}

// NewWriting creates a Logger writing human-readable output to w.
func NewWriting(w io.Writer) *Logger {
	l := &Logger{}
	l.SetOutput(w)
	return l
}

// SetOutput updates the logger's output destination.
func (l *Logger) SetOutput(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	l.slogger.Store(slog.New(handler))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.slogger.Load().Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.slogger.Load().Warn(msg)
}

// Error logs an error with its zerr metadata as structured fields.
func (l *Logger) Error(err error) {
	zerr.Log(context.Background(), l.slogger.Load(), err)
}

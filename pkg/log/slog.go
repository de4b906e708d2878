package log

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// SlogAdapter implements Logger on top of a *slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps an existing *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// NewTintLogger returns a *slog.Logger with a colorized tint handler on w.
func NewTintLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// Debug logs a debug-level message.
func (s *SlogAdapter) Debug(msg string, fields ...Field) {
	s.log(slog.LevelDebug, msg, fields)
}

// Info logs an info-level message.
func (s *SlogAdapter) Info(msg string, fields ...Field) {
	s.log(slog.LevelInfo, msg, fields)
}

// Warn logs a warning-level message.
func (s *SlogAdapter) Warn(msg string, fields ...Field) {
	s.log(slog.LevelWarn, msg, fields)
}

// Error logs an error-level message.
func (s *SlogAdapter) Error(msg string, fields ...Field) {
	s.log(slog.LevelError, msg, fields)
}

func (s *SlogAdapter) log(level slog.Level, msg string, fields []Field) {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			attrs = append(attrs, tint.Err(err))
			continue
		}
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	s.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Logger returns the underlying *slog.Logger.
func (s *SlogAdapter) Logger() *slog.Logger {
	return s.logger
}

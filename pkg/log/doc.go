// Package log provides a logging abstraction for fairframe components.
//
// This package defines a Logger interface that can be implemented by
// any logging library. Implementations are provided for zerolog, for
// log/slog (with a tint handler for colorized terminals) and a no-op
// logger for library use and tests.
//
// # Usage
//
// Use the zerolog adapter:
//
//	logger := log.NewZerologAdapterWithLogger(log.NewConsoleLogger(os.Stderr, zerolog.InfoLevel))
//
// Or the slog adapter:
//
//	logger := log.NewSlogAdapter(log.NewTintLogger(os.Stderr, slog.LevelInfo))
//
// Or the no-op logger:
//
//	logger := log.NewNoopLogger()
package log

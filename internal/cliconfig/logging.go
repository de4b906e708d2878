package cliconfig

import (
	"io"
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	"github.com/bft-labs/fairframe/pkg/log"
)

// Logger returns the zerolog logger used before configuration is loaded.
func Logger() zerolog.Logger {
	return log.NewConsoleLogger(os.Stderr, zerolog.InfoLevel)
}

// NewLogger builds the configured logger writing to w.
// cfg must have passed Validate.
func NewLogger(cfg Config, w io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case LogFormatJSON:
		return log.NewZerologAdapterWithLogger(log.NewJSONLogger(w, level)), nil
	case LogFormatTint:
		return log.NewSlogAdapter(log.NewTintLogger(w, slogLevel(level))), nil
	default:
		return log.NewZerologAdapterWithLogger(log.NewConsoleLogger(w, level)), nil
	}
}

// slogLevel maps a zerolog level onto the nearest slog level.
func slogLevel(l zerolog.Level) slog.Level {
	switch {
	case l <= zerolog.DebugLevel:
		return slog.LevelDebug
	case l == zerolog.InfoLevel:
		return slog.LevelInfo
	case l == zerolog.WarnLevel:
		return slog.LevelWarn
	case l == zerolog.Disabled:
		return slog.LevelError + 4
	default:
		return slog.LevelError
	}
}

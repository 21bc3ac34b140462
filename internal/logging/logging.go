// Package logging sets up structured, size-rotated file logging for the
// server: a slog.JSONHandler over a rotating file writer, optionally teed
// to stderr. Rotation size/count and stderr teeing are load-time knobs
// threaded in from internal/config.LoggingConfig rather than hardcoded,
// since this service has no standalone log-viewer CLI to tune them for.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls where and how server logs are written.
type Config struct {
	Level         string
	FilePath      string
	MaxSizeMB     int
	MaxFiles      int
	WriteToStderr bool
}

// DefaultConfig returns info-level logging to the default log path,
// also teed to stderr. Used when no internal/config.LoggingConfig
// overrides it (e.g. when no library config file loads).
func DefaultConfig() Config {
	return Config{
		Level:         "info",
		FilePath:      DefaultLogPath(),
		MaxSizeMB:     10,
		MaxFiles:      5,
		WriteToStderr: true,
	}
}

// Setup builds a *slog.Logger writing JSON records to a size-rotated file
// (and stderr, if configured). The returned cleanup function flushes and
// closes the log file and must be called before the process exits.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultLogPath()
	}

	writer, err := openRotatingFile(cfg.FilePath, cfg.MaxSizeMB, cfg.MaxFiles)
	if err != nil {
		return nil, nil, err
	}

	dest := io.Writer(writer)
	if cfg.WriteToStderr {
		dest = io.MultiWriter(writer, os.Stderr)
	}

	handler := slog.NewJSONHandler(dest, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	logger := slog.New(handler)

	return logger, func() { _ = writer.Close() }, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

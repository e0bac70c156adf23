// Package logger provides the process-wide structured logger. It wraps
// zerolog behind a small configuration surface so binaries pick the level
// and format once at startup and packages attach component context.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls the process logger.
type Config struct {
	// Level is one of trace, debug, info, warn, error. Empty means info.
	Level string `toml:"level"`
	// Pretty switches from JSON lines to a human-readable console format.
	Pretty bool `toml:"pretty"`
}

// New builds a logger writing to stderr.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter builds a logger writing to the given sink. The configured
// level is applied globally.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

var global = New(Config{})

// Get returns the process-wide logger.
func Get() zerolog.Logger { return global }

// SetGlobal replaces the process-wide logger. Call once at startup, before
// any component loggers are derived.
func SetGlobal(l zerolog.Logger) { global = l }

// Component returns the process-wide logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return global.With().Str("component", name).Logger()
}

// Package logger provides the process wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/alevsk/argocd-migrate/internal/config"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var log = newConsoleLogger(os.Stderr)

// Init initializes the logger using the application configuration
func Init(cfg *config.Config) {
	level := zerolog.InfoLevel
	if cfg.LogLevel != "" {
		if l, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			level = l
		}
	}
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}

// SetOutput replaces the log destination. Output written to w is JSON.
func SetOutput(w io.Writer) {
	log = zerolog.New(w).With().Timestamp().Logger()
}

func newConsoleLogger(f *os.File) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        f,
		TimeFormat: time.TimeOnly,
		NoColor:    !term.IsTerminal(int(f.Fd())),
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

// Debug logs a debug message if debug mode is enabled
func Debug() *zerolog.Event {
	return log.Debug()
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error logs an error message
func Error() *zerolog.Event {
	return log.Error()
}

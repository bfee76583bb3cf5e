// Package logger provides structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the global logger instance.
var Log zerolog.Logger

// Logs go to stderr so command output on stdout stays pipeable.
var output io.Writer = os.Stderr

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	SetConsole()
}

// SetLevel sets the global log level.
func SetLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// SetConsole switches to human-readable output.
func SetConsole() {
	Log = zerolog.New(zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: time.RFC3339,
	}).
		With().
		Timestamp().
		Caller().
		Logger()
}

// SetJSON switches to JSON output (for scripting).
func SetJSON() {
	Log = zerolog.New(output).
		With().
		Timestamp().
		Logger()
}

// SetOutput redirects the logger to w, keeping the current format choice
// to the caller: call SetConsole or SetJSON afterwards.
func SetOutput(w io.Writer) {
	output = w
}

// Configure applies the level and format ("console" or "json").
func Configure(level, format string) {
	if format == "json" {
		SetJSON()
	} else {
		SetConsole()
	}
	SetLevel(level)
}

// Package logging builds the zerolog loggers used for diagnostics.
// Diagnostics always go to stderr so stdout stays clean for command
// output and the MCP stdio transport.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for building a logger.
type Config struct {
	Level   string    // log level name ("debug", "info", ...); defaults to warn
	Verbose bool      // forces debug level
	Output  io.Writer // defaults to os.Stderr
	Console bool      // human-readable console output instead of JSON
}

// New returns a logger configured from cfg. Unknown level names fall
// back to warn.
func New(cfg Config) zerolog.Logger {
	level := zerolog.WarnLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil && parsed != zerolog.NoLevel {
			level = parsed
		}
	}
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if cfg.Console {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen, NoColor: true}
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

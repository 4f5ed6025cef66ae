// Package logging builds the zerolog logger used by the repodriller CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// Options configures New.
type Options struct {
	// Level is a zerolog level name such as "debug" or "warn". Unknown or
	// empty values fall back to info.
	Level string

	// Format is FormatPretty or FormatJSON. Anything else is treated as JSON.
	Format string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// New creates a logger with a timestamp on every event.
func New(opts Options) zerolog.Logger {
	var output io.Writer = os.Stderr
	if opts.Output != nil {
		output = opts.Output
	}

	if opts.Format == FormatPretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(output).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel parses a level name, ignoring case. Unknown names yield
// zerolog.InfoLevel.
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return l
}

// ValidFormat reports whether format is a supported output format.
func ValidFormat(format string) bool {
	return format == FormatPretty || format == FormatJSON
}

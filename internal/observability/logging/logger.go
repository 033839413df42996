// Package logging builds the process-wide slog logger. Every record
// carries the service name so aggregated output stays attributable.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options controls logger construction. The zero value logs at info
// level to stdout.
type Options struct {
	// Service is attached to every record as the "service" attribute.
	Service string
	// Level is a case-insensitive level name: debug, info, warn or
	// error. Unknown values fall back to info.
	Level string
	// Output receives the JSON records. Nil means os.Stdout.
	Output io.Writer
}

// New returns a JSON slog logger configured from opts.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	})
	logger := slog.New(handler)
	if opts.Service != "" {
		logger = logger.With("service", opts.Service)
	}
	return logger
}

// ParseLevel maps a level name to its slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

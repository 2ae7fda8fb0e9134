// Package logging builds the structured loggers used by the importer and
// the command line.
//
// Output goes to stderr so that serialized graphs written to stdout stay
// clean. Text output is the default; JSON is available for log shippers.
//
//	logger := logging.New(logging.Config{Level: "debug", Service: "spatrem"})
//	logger.Info("compiled", "triples", n)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config selects level, format and the service attribute.
type Config struct {
	// Level is one of debug, info, warn or error. Empty means info.
	Level string `yaml:"level" env:"LEVEL"`
	// Format is text or json. Empty means text.
	Format string `yaml:"format" env:"FORMAT"`
	// Service is attached to every record when set.
	Service string `yaml:"-"`
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// New returns a logger writing to stderr. Unknown levels fall back to info.
func New(config Config) *slog.Logger {
	return NewWithWriter(config, os.Stderr)
}

// NewWithWriter returns a logger writing to w.
func NewWithWriter(config Config, w io.Writer) *slog.Logger {
	level, _ := ParseLevel(config.Level)
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(config.Format, FormatJSON) {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}

	logger := slog.New(handler)
	if config.Service != "" {
		logger = logger.With("service", config.Service)
	}
	return logger
}

// Default returns an info-level text logger on stderr.
func Default() *slog.Logger {
	return New(Config{Service: "spatrem"})
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package logger

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// Config controls the console logger.
type Config struct {
	Level      string `yaml:"level" env:"LEVEL"`           // debug, info, warn or error
	Timestamps bool   `yaml:"timestamps" env:"TIMESTAMPS"` // prefix lines with the time
}

// New creates a human-readable logger writing to w with optional context extractors.
func New(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewContextHandler(newConsoleHandler(w, cfg), extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newConsoleHandler(w io.Writer, cfg Config) slog.Handler {
	return log.NewWithOptions(w, log.Options{
		Level:           cfg.level(),
		ReportTimestamp: cfg.Timestamps,
	})
}

// level falls back to info for empty or unknown names.
func (c Config) level() log.Level {
	lvl, err := log.ParseLevel(c.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

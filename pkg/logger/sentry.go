package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `yaml:"dsn" env:"SENTRY_DSN"`
	Environment string `yaml:"environment" env:"SENTRY_ENVIRONMENT"`
	// MinLevel is the lowest level forwarded to Sentry. Anything below warn is raised to warn.
	MinLevel slog.Level `yaml:"-"`
}

// NewWithSentry creates a logger that writes to w and forwards warnings and errors to Sentry.
// With an empty DSN, or when Sentry fails to initialize, only the console is used.
func NewWithSentry(w io.Writer, cfg Config, sc SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	console := newConsoleHandler(w, cfg)

	if sc.DSN == "" {
		return slog.New(NewContextHandler(console, extractors...))
	}

	env := sc.Environment
	if env == "" {
		env = "production"
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         sc.DSN,
		Environment: env,
		EnableLogs:  true,
	}); err != nil {
		slog.New(console).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(console, extractors...))
	}

	// Failed rows become Sentry issues; warnings such as skipped attachments are kept as logs.
	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	handler := newFanout(
		sink{handler: console, min: slog.LevelDebug},
		sink{handler: sentryHandler, min: max(sc.MinLevel, slog.LevelWarn)},
	)
	return slog.New(NewContextHandler(handler, extractors...))
}

// Flush waits up to timeout for buffered Sentry events to be delivered.
// It is a no-op when Sentry was never initialized.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

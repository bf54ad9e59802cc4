package merge

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/mailmerge/pkg/logger"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

// Option configures a Runner.
type Option func(*options)

type options struct {
	connector mailer.Connector
	output    io.Writer
	logger    *slog.Logger
	delay     time.Duration
	limit     int
	dryRun    bool
	verbose   bool
}

func defaultOptions() options {
	return options{
		output: os.Stdout,
		logger: logger.NewNope(),
	}
}

// WithConnector sets how the Sender is acquired. Required unless dry-run is enabled.
func WithConnector(c mailer.Connector) Option {
	return func(o *options) {
		o.connector = c
	}
}

// WithDryRun renders and assembles every row without connecting or sending.
func WithDryRun(enabled bool) Option {
	return func(o *options) {
		o.dryRun = enabled
	}
}

// WithOutput sets where progress lines are written (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithLogger sets the logger for warnings and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDelay waits d between consecutive sends.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		o.delay = d
	}
}

// WithLimit processes only the first n rows. Zero or less means all rows.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithVerbose adds subjects and message IDs to progress lines.
func WithVerbose(enabled bool) Option {
	return func(o *options) {
		o.verbose = enabled
	}
}

// Package cli wires configuration, credentials and the merge pipeline into the
// mailmerge command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailmerge/pkg/config"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/gmail"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/resend"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/ses"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailmerge/pkg/oauth"
)

// ConnectFunc builds the connector for the configured provider.
type ConnectFunc func(ctx context.Context, cfg *config.Config) (mailer.Connector, error)

// App is the mailmerge command line.
type App struct {
	stdout  io.Writer
	stderr  io.Writer
	environ map[string]string
	connect ConnectFunc
	oauth   []oauth.Option
}

// Option configures an App.
type Option func(*App)

// WithOutput sets the writers for progress lines and for logs.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// WithEnviron replaces the process environment used for configuration.
func WithEnviron(vars map[string]string) Option {
	return func(a *App) {
		a.environ = vars
	}
}

// WithConnectFunc replaces provider selection.
func WithConnectFunc(fn ConnectFunc) Option {
	return func(a *App) {
		a.connect = fn
	}
}

// WithOAuthOptions adds options to the Gmail credential provider.
func WithOAuthOptions(opts ...oauth.Option) Option {
	return func(a *App) {
		a.oauth = append(a.oauth, opts...)
	}
}

// New creates an App writing to the process stdout and stderr.
func New(opts ...Option) *App {
	a := &App{stdout: os.Stdout, stderr: os.Stderr}
	a.connect = a.providerConnector
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Execute runs the command line with args (without the program name).
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.Command()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// Command builds the root command. Without a subcommand it behaves as send.
func (a *App) Command() *cobra.Command {
	g := &globalFlags{}
	s := &sendFlags{}

	root := &cobra.Command{
		Use:   "mailmerge",
		Short: "Send personalized emails to every row of a CSV file",
		Long: `mailmerge renders a text/markdown template for each row of a CSV file and
sends the result through Gmail, Resend, Amazon SES or SMTP.

Placeholders use the column names of the CSV header: {name}, {email}.
Write {{ and }} for literal braces.

Example:
  mailmerge --csv contacts.csv --template welcome.md --subject "Hi {name}" \
    --from "Team <team@example.com>" --attach "invoices/{name}.pdf" --dry-run`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSend(cmd, g, s)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	g.register(root)
	s.register(root)

	send := &cobra.Command{
		Use:   "send",
		Short: "Render and send one message per CSV row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSend(cmd, g, s)
		},
	}
	s.register(send)

	root.AddCommand(send, a.authCommand(g), versionCommand())
	return root
}

// providerConnector is the default ConnectFunc.
func (a *App) providerConnector(_ context.Context, cfg *config.Config) (mailer.Connector, error) {
	switch cfg.Provider {
	case config.ProviderGmail:
		p, err := oauth.New(cfg.Gmail, append([]oauth.Option{oauth.WithOutput(a.stderr)}, a.oauth...)...)
		if err != nil {
			return nil, err
		}
		return gmail.Connector(p), nil
	case config.ProviderResend:
		return resend.Connector(cfg.Resend), nil
	case config.ProviderSES:
		return ses.Connector(cfg.SES), nil
	case config.ProviderSMTP:
		return smtp.Connector(cfg.SMTP), nil
	default:
		return nil, fmt.Errorf("%w %q", config.ErrInvalidProvider, cfg.Provider)
	}
}

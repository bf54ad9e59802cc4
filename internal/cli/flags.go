package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailmerge/pkg/config"
	"github.com/dmitrymomot/mailmerge/pkg/logger"
)

type globalFlags struct {
	configFile string
	envFile    string
	verbose    bool
	debug      bool
}

func (g *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.configFile, "config", "c", "", "YAML config file")
	pf.StringVar(&g.envFile, "env-file", "", "dotenv file with environment overrides")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "print subjects and message IDs")
	pf.BoolVar(&g.debug, "debug", false, "enable debug logging")
}

// sources returns the config layers with flags as the top layer.
func (g *globalFlags) sources(a *App, flags *config.Config) config.Sources {
	return config.Sources{
		File:    g.configFile,
		EnvFile: g.envFile,
		Environ: a.environ,
		Flags:   flags,
	}
}

func (g *globalFlags) logConfig(cfg logger.Config) logger.Config {
	if g.debug {
		cfg.Level = "debug"
	}
	return cfg
}

type sendFlags struct {
	csv            string
	template       string
	subject        string
	from           string
	attach         []string
	attachmentRoot string
	recipientField string
	layout         string
	provider       string
	dryRun         bool
	plain          bool
	limit          int
	delay          time.Duration
}

func (s *sendFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&s.csv, "csv", "", "CSV file with a header row")
	f.StringVar(&s.template, "template", "", "template file (text/markdown, optional YAML frontmatter)")
	f.StringVar(&s.subject, "subject", "", "subject format, e.g. \"Hi {name}\" (overrides frontmatter)")
	f.StringVar(&s.from, "from", "", "sender, e.g. \"Name <addr@example.com>\"")
	f.StringArrayVar(&s.attach, "attach", nil, "attachment path pattern, repeatable, e.g. \"{name}.pdf\" or s3://bucket/{id}.pdf")
	f.StringVar(&s.attachmentRoot, "attachment-root", "", "directory relative attachment paths are resolved against")
	f.StringVar(&s.recipientField, "recipient-field", "", "CSV column holding the recipient address (default \"email\")")
	f.StringVar(&s.layout, "layout", "", "HTML layout file wrapping the HTML part")
	f.StringVar(&s.provider, "provider", "", "delivery provider: gmail, resend, ses or smtp (default \"gmail\")")
	f.BoolVar(&s.dryRun, "dry-run", false, "render every row but send nothing")
	f.BoolVar(&s.plain, "plain", false, "send plain text only, without the HTML alternative")
	f.IntVar(&s.limit, "limit", 0, "process only the first N rows")
	f.DurationVar(&s.delay, "delay", 0, "wait between sends, e.g. 500ms")
}

// overlay converts the flags set on cmd into a partial Config.
func (s *sendFlags) overlay(cmd *cobra.Command) *config.Config {
	changed := cmd.Flags().Changed
	cfg := &config.Config{}

	if changed("provider") {
		cfg.Provider = s.provider
	}
	if changed("csv") {
		cfg.Send.CSV = s.csv
	}
	if changed("template") {
		cfg.Send.Template = s.template
	}
	if changed("subject") {
		cfg.Send.Subject = s.subject
	}
	if changed("from") {
		cfg.Send.From = s.from
	}
	if changed("attach") {
		cfg.Send.Attachments = s.attach
	}
	if changed("attachment-root") {
		cfg.Send.AttachmentRoot = s.attachmentRoot
	}
	if changed("recipient-field") {
		cfg.Send.RecipientField = s.recipientField
	}
	if changed("layout") {
		cfg.Send.Layout = s.layout
	}
	if changed("dry-run") {
		cfg.Send.DryRun = s.dryRun
	}
	if changed("plain") {
		cfg.Send.PlainText = s.plain
	}
	if changed("limit") {
		cfg.Send.Limit = s.limit
	}
	if changed("delay") {
		cfg.Send.Delay = s.delay
	}
	return cfg
}

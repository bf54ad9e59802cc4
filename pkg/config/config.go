package config

import (
	"time"

	"github.com/dmitrymomot/mailmerge/pkg/logger"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/resend"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/ses"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailmerge/pkg/merge"
	"github.com/dmitrymomot/mailmerge/pkg/oauth"
	"github.com/dmitrymomot/mailmerge/pkg/storage"
)

// Supported delivery providers.
const (
	ProviderGmail  = "gmail"
	ProviderResend = "resend"
	ProviderSES    = "ses"
	ProviderSMTP   = "smtp"
)

// Providers lists the accepted values of Config.Provider.
func Providers() []string {
	return []string{ProviderGmail, ProviderResend, ProviderSES, ProviderSMTP}
}

// Config is the complete mailmerge configuration.
type Config struct {
	Provider string `yaml:"provider" env:"MAILMERGE_PROVIDER"`

	Send Send `yaml:"send" envPrefix:"MAILMERGE_"`

	Gmail  oauth.Config   `yaml:"gmail" envPrefix:"GMAIL_"`
	Resend resend.Config  `yaml:"resend" envPrefix:"RESEND_"`
	SES    ses.Config     `yaml:"ses" envPrefix:"SES_"`
	SMTP   smtp.Config    `yaml:"smtp" envPrefix:"SMTP_"`
	S3     storage.Config `yaml:"s3" envPrefix:"S3_"`

	Log    logger.Config       `yaml:"log" envPrefix:"MAILMERGE_LOG_"`
	Sentry logger.SentryConfig `yaml:"sentry"`
}

// Send holds the settings of one batch run.
type Send struct {
	CSV      string `yaml:"csv" env:"CSV"`
	Template string `yaml:"template" env:"TEMPLATE"`

	// Subject overrides the template's frontmatter subject.
	Subject         string `yaml:"subject" env:"SUBJECT"`
	// FallbackSubject is used when neither Subject nor frontmatter set one.
	FallbackSubject string `yaml:"fallback_subject" env:"FALLBACK_SUBJECT"`

	From           string   `yaml:"from" env:"FROM"`
	Attachments    []string `yaml:"attachments" env:"ATTACHMENTS" envSeparator:";"`
	AttachmentRoot string   `yaml:"attachment_root" env:"ATTACHMENT_ROOT"`
	RecipientField string   `yaml:"recipient_field" env:"RECIPIENT_FIELD"`
	Layout         string   `yaml:"layout" env:"LAYOUT"`

	// PlainText disables the HTML alternative part.
	PlainText bool `yaml:"plain_text" env:"PLAIN_TEXT"`
	DryRun    bool `yaml:"dry_run" env:"DRY_RUN"`

	Limit int           `yaml:"limit" env:"LIMIT"`
	Delay time.Duration `yaml:"delay" env:"DELAY"`

	// CacheSize bounds the attachment bytes kept in memory across rows.
	CacheSize    int64 `yaml:"cache_size" env:"CACHE_SIZE"`
	// CacheEntries bounds the number of distinct attachments kept in memory.
	CacheEntries int   `yaml:"cache_entries" env:"CACHE_ENTRIES"`
}

// Default values.
const (
	DefaultClientSecretsFile = "credentials.json"
	DefaultTokenFile         = "token.json"
	DefaultSMTPPort          = 587
	DefaultCacheSize         = 64 << 20
	DefaultCacheEntries      = 256
)

// Default returns the configuration used before any file, environment or flag is applied.
func Default() Config {
	return Config{
		Provider: ProviderGmail,
		Send: Send{
			RecipientField: merge.DefaultRecipientField,
			CacheSize:      DefaultCacheSize,
			CacheEntries:   DefaultCacheEntries,
		},
		Gmail: oauth.Config{
			ClientSecretsFile: DefaultClientSecretsFile,
			TokenFile:         DefaultTokenFile,
			Scopes:            oauth.DefaultScopes(),
		},
		SMTP: smtp.Config{
			Port:    DefaultSMTPPort,
			Timeout: 10 * time.Second,
		},
		S3: storage.Config{
			Region:        storage.DefaultRegion,
			MaxObjectSize: storage.DefaultMaxObjectSize,
		},
		Log: logger.Config{Level: "info"},
	}
}

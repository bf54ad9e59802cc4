package oauth

// GmailSendScope allows sending mail only; it grants no read access.
const GmailSendScope = "https://www.googleapis.com/auth/gmail.send"

// Config holds the Google installed-app OAuth configuration.
type Config struct {
	ClientSecretsFile string   `yaml:"credentials_file" env:"CREDENTIALS_FILE"`
	TokenFile         string   `yaml:"token_file" env:"TOKEN_FILE"`
	Scopes            []string `yaml:"scopes" env:"SCOPES" envSeparator:","`
}

// DefaultScopes returns the scopes requested when none are configured.
func DefaultScopes() []string {
	return []string{GmailSendScope}
}

func (c Config) scopes() []string {
	if len(c.Scopes) == 0 {
		return DefaultScopes()
	}
	return c.Scopes
}

package resend

// Config holds Resend email provider configuration.
// Nested in the mailmerge config under the RESEND_ env prefix.
type Config struct {
	APIKey  string `yaml:"api_key" env:"API_KEY"`
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
}

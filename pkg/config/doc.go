// Package config loads mailmerge settings from layered sources.
//
// Precedence, lowest first: Default, the YAML file, a dotenv file, the process
// environment, then command-line flags. Flags are passed as a partial Config and
// merged with mergo, so only fields a flag actually set take effect:
//
//	cfg, err := config.Load(config.Sources{
//		File:    "mailmerge.yaml",
//		EnvFile: ".env",
//		Flags:   &config.Config{Send: config.Send{DryRun: true}},
//	})
//	if err != nil {
//		return err
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//
// Environment variables follow the provider sections: GMAIL_TOKEN_FILE,
// RESEND_API_KEY, SES_REGION, SMTP_HOST, S3_ENDPOINT, and MAILMERGE_* for the
// run itself (MAILMERGE_CSV, MAILMERGE_FROM, MAILMERGE_PROVIDER).
package config

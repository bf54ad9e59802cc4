package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Sources names the layers Load combines, lowest precedence first after defaults.
type Sources struct {
	// File is a YAML config file. Empty skips it.
	File string

	// EnvFile is a dotenv file. Its values never replace variables already set.
	EnvFile string

	// Environ replaces the process environment when non-nil.
	Environ map[string]string

	// Flags holds values set on the command line. Zero fields are ignored.
	Flags *Config
}

// Load builds a Config from defaults, then File, then the environment, then Flags.
func Load(src Sources) (*Config, error) {
	cfg := Default()

	if src.File != "" {
		data, err := os.ReadFile(src.File)
		if err != nil {
			return nil, errors.Join(ErrReadFile, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Join(ErrParseFile, err)
		}
	}

	vars, err := environ(src)
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return nil, errors.Join(ErrParseEnv, err)
	}

	if src.Flags != nil {
		if err := mergo.Merge(&cfg, *src.Flags, mergo.WithOverride); err != nil {
			return nil, errors.Join(ErrMerge, err)
		}
	}

	return &cfg, nil
}

func environ(src Sources) (map[string]string, error) {
	vars := src.Environ
	if vars == nil {
		vars = env.ToMap(os.Environ())
	}
	if src.EnvFile == "" {
		return vars, nil
	}

	fileVars, err := godotenv.Read(src.EnvFile)
	if err != nil {
		return nil, errors.Join(ErrReadEnvFile, err)
	}

	merged := make(map[string]string, len(vars)+len(fileVars))
	maps.Copy(merged, fileVars)
	maps.Copy(merged, vars)
	return merged, nil
}

// Validate checks the settings needed for a send run.
// Provider credentials are checked only outside dry-run.
func (c *Config) Validate() error {
	provider := strings.ToLower(strings.TrimSpace(c.Provider))
	if !slices.Contains(Providers(), provider) {
		return fmt.Errorf("%w %q (expected one of %s)", ErrInvalidProvider, c.Provider, strings.Join(Providers(), ", "))
	}

	c.Provider = provider

	var errs []error
	if c.Send.CSV == "" {
		errs = append(errs, ErrMissingCSV)
	}
	if c.Send.Template == "" {
		errs = append(errs, ErrMissingTemplate)
	}
	if c.Send.Limit < 0 {
		errs = append(errs, fmt.Errorf("%w: limit must not be negative", ErrInvalidValue))
	}
	if c.Send.Delay < 0 {
		errs = append(errs, fmt.Errorf("%w: delay must not be negative", ErrInvalidValue))
	}

	if !c.Send.DryRun {
		switch provider {
		case ProviderResend:
			if c.Resend.APIKey == "" {
				errs = append(errs, ErrMissingAPIKey)
			}
		case ProviderSMTP:
			if c.SMTP.Host == "" {
				errs = append(errs, ErrMissingSMTPHost)
			}
		}
	}

	return errors.Join(errs...)
}

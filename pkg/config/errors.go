package config

import "errors"

var (
	ErrReadFile        = errors.New("config: failed to read config file")
	ErrParseFile       = errors.New("config: failed to parse config file")
	ErrReadEnvFile     = errors.New("config: failed to read env file")
	ErrParseEnv        = errors.New("config: failed to parse environment")
	ErrMerge           = errors.New("config: failed to merge flags")
	ErrInvalidProvider = errors.New("config: unknown provider")
	ErrMissingCSV      = errors.New("config: csv file is required")
	ErrMissingTemplate = errors.New("config: template file is required")
	ErrMissingAPIKey   = errors.New("config: resend api key is required")
	ErrMissingSMTPHost = errors.New("config: smtp host is required")
	ErrInvalidValue    = errors.New("config: invalid value")
)

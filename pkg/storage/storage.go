package storage

import (
	"context"
	"strings"
)

// Source fetches attachment objects by location.
type Source interface {
	// Get reads the whole object at location.
	// Returns an error matching ErrNotFound when nothing exists there.
	Get(ctx context.Context, location string) (*Object, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, location string) (*Object, error)

// Get implements Source.
func (f SourceFunc) Get(ctx context.Context, location string) (*Object, error) {
	return f(ctx, location)
}

// Object is a fetched file.
type Object struct {
	// Location is the string the object was requested with.
	Location string

	// Name is the base file name used as the attachment name.
	Name string

	// ContentType is the detected MIME type.
	ContentType string

	// Data is the object content.
	Data []byte
}

// Size returns the content length in bytes.
func (o *Object) Size() int {
	return len(o.Data)
}

// Config holds S3-compatible storage configuration.
type Config struct {
	// AccessKey and SecretKey select static credentials.
	// When both are empty the default AWS credential chain is used.
	AccessKey string `yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY"`

	// Endpoint is the custom S3 endpoint URL (optional, for MinIO or other S3-compatible services).
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`

	// Region is the AWS region (default: us-east-1).
	Region string `yaml:"region" env:"REGION"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `yaml:"path_style" env:"PATH_STYLE"`

	// MaxObjectSize is the largest object read in bytes (default: 25MB).
	MaxObjectSize int64 `yaml:"max_object_size" env:"MAX_OBJECT_SIZE"`
}

// Default configuration values.
const (
	DefaultRegion        = "us-east-1"
	DefaultMaxObjectSize = 25 << 20 // Gmail's message size limit
)

// applyDefaults fills in default values for empty config fields.
func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.MaxObjectSize == 0 {
		c.MaxObjectSize = DefaultMaxObjectSize
	}
}

// validate rejects half-configured static credentials.
func (c *Config) validate() error {
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return ErrInvalidConfig
	}
	if c.MaxObjectSize < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Scheme returns the lowercase URL scheme of location, or "" for plain paths.
func Scheme(location string) string {
	scheme, _, ok := strings.Cut(location, "://")
	if !ok || scheme == "" || strings.ContainsAny(scheme, `/\`) {
		return ""
	}
	return strings.ToLower(scheme)
}

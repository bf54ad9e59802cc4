package oauth

import (
	"io"
	"net/http"
	"os"

	"github.com/pkg/browser"
)

// Option configures a credential provider.
type Option func(*options)

type options struct {
	httpClient  *http.Client
	store       TokenStore
	output      io.Writer
	openBrowser func(url string) error
	force       bool
}

func newOptions(opts []Option) options {
	o := options{
		output:      os.Stderr,
		openBrowser: browser.OpenURL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithHTTPClient sets a custom HTTP client for token requests.
// This is useful for testing with httptest servers or injecting
// custom transports (e.g., logging, retries).
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithStore replaces the file store derived from Config.TokenFile.
func WithStore(s TokenStore) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithOutput sets where consent instructions are printed. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithBrowser sets the function used to open the consent URL.
// Pass nil to only print the URL.
func WithBrowser(open func(url string) error) Option {
	return func(o *options) {
		o.openBrowser = open
	}
}

// WithForceConsent always runs the interactive flow, replacing any stored token.
func WithForceConsent() Option {
	return func(o *options) {
		o.force = true
	}
}

package mailer

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrLayoutNotFound indicates the layout file was not found.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrRenderFailed indicates markdown or layout rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrInvalidAddress indicates an address header value is not a valid RFC 5322 address.
	ErrInvalidAddress = errors.New("invalid email address")

	// ErrComposeFailed indicates the MIME message could not be built.
	ErrComposeFailed = errors.New("failed to compose message")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")
)

// ProviderError is returned by Senders when the provider rejects or fails a send.
// Message carries the provider's own description, including quota signals.
type ProviderError struct {
	Err      error
	Provider string
	Message  string
}

// NewProviderError wraps err as a failure reported by provider.
func NewProviderError(provider string, err error) *ProviderError {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &ProviderError{Provider: provider, Message: msg, Err: err}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// Unwrap exposes both ErrSendFailed and the provider's cause.
func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSendFailed}
	}
	return []error{ErrSendFailed, e.Err}
}

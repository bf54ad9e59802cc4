package mailer

import (
	"fmt"
	"net/mail"
	"strings"
)

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
// Names containing specials are quoted.
func Recipient(name, email string) string {
	if strings.TrimSpace(name) == "" {
		return email
	}
	return (&mail.Address{Name: name, Address: email}).String()
}

// ParseAddress validates a single RFC 5322 address ("addr" or "Name <addr>")
// and returns the bare addr-spec.
func ParseAddress(s string) (string, error) {
	a, err := mail.ParseAddress(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return a.Address, nil
}

// Email represents a fully-prepared email message ready for sending.
// Senders treat it as read-only.
type Email struct {
	Headers     map[string]string // Custom headers
	Subject     string            // Email subject
	Text        string            // Plain text body, always the first part
	HTML        string            // Optional HTML alternative
	From        string            // Sender address, "Name <addr>" allowed
	ReplyTo     string            // Reply-to address
	To          []string          // Recipients (at least one required)
	CC          []string          // Carbon copy recipients
	BCC         []string          // Blind carbon copy recipients
	Attachments []Attachment      // File attachments, in order
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf")
	Content     []byte // Raw file content
}

// Size returns the total attachment payload size in bytes.
func (e *Email) Size() int {
	n := 0
	for _, a := range e.Attachments {
		n += len(a.Content)
	}
	return n
}

// Receipt describes a message accepted by a provider.
type Receipt struct {
	Provider string // Provider identifier (e.g., "gmail")
	ID       string // Provider-assigned message ID, may be empty
}

func (r *Receipt) String() string {
	if r.ID == "" {
		return r.Provider
	}
	return fmt.Sprintf("%s:%s", r.Provider, r.ID)
}

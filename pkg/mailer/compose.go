package mailer

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	netmail "net/mail"
	"slices"
	"strings"
	"time"

	"github.com/go-mail/mail"
	"github.com/google/uuid"
)

// ComposeOptions holds the values of a message that are not derived from the Email.
// Fixing both makes Compose output reproducible apart from MIME boundaries.
type ComposeOptions struct {
	Date      time.Time // Zero means time.Now()
	MessageID string    // Without angle brackets; empty omits the header
}

// NewMessageID returns a unique Message-ID for the sender's domain.
func NewMessageID(from string) string {
	domain := "localhost"
	if addr, err := ParseAddress(from); err == nil {
		if _, d, ok := strings.Cut(addr, "@"); ok && d != "" {
			domain = d
		}
	}
	return uuid.NewString() + "@" + domain
}

// BuildMessage converts an Email into a go-mail message.
// The plain part comes first; HTML is added as a multipart/alternative sibling.
func BuildMessage(e *Email, opts ComposeOptions) (*mail.Message, error) {
	if len(e.To) == 0 {
		return nil, ErrNoRecipient
	}

	m := mail.NewMessage()
	for _, h := range []struct {
		field  string
		values []string
	}{
		{"From", nonEmpty(e.From)},
		{"To", e.To},
		{"Cc", e.CC},
		{"Bcc", e.BCC},
		{"Reply-To", nonEmpty(e.ReplyTo)},
	} {
		if err := setAddressHeader(m, h.field, h.values); err != nil {
			return nil, err
		}
	}
	m.SetHeader("Subject", e.Subject)

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}
	m.SetDateHeader("Date", date)
	if opts.MessageID != "" {
		m.SetHeader("Message-ID", "<"+opts.MessageID+">")
	}

	keys := make([]string, 0, len(e.Headers))
	for k := range e.Headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		m.SetHeader(k, e.Headers[k])
	}

	switch {
	case e.HTML == "":
		m.SetBody("text/plain", e.Text)
	case e.Text == "":
		m.SetBody("text/html", e.HTML)
	default:
		m.SetBody("text/plain", e.Text)
		m.AddAlternative("text/html", e.HTML)
	}

	for _, a := range e.Attachments {
		m.Attach(a.Filename,
			mail.SetCopyFunc(copyBytes(a.Content)),
			mail.SetHeader(map[string][]string{
				"Content-Type": {attachmentContentType(a)},
			}),
		)
	}

	return m, nil
}

// setAddressHeader parses each value and writes it with the display name encoded
// separately from the address. SetHeader encodes the values in place, so it only
// ever sees a fresh slice.
func setAddressHeader(m *mail.Message, field string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	formatted := make([]string, 0, len(values))
	for _, v := range values {
		addr, err := netmail.ParseAddress(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s %q: %w", ErrInvalidAddress, field, v, err)
		}
		formatted = append(formatted, m.FormatAddress(addr.Address, addr.Name))
	}
	m.SetHeader(field, formatted...)
	return nil
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// Compose renders the Email as an RFC 5322 message.
func Compose(e *Email, opts ComposeOptions) ([]byte, error) {
	m, err := BuildMessage(e, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, errors.Join(ErrComposeFailed, err)
	}
	return buf.Bytes(), nil
}

// EncodeRaw wraps a composed message in URL-safe base64, the form Gmail's API expects.
func EncodeRaw(raw []byte) string {
	return base64.URLEncoding.EncodeToString(raw)
}

// DecodeRaw reverses EncodeRaw.
func DecodeRaw(s string) ([]byte, error) {
	return base64.URLEncoding.DecodeString(s)
}

func copyBytes(b []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	}
}

func attachmentContentType(a Attachment) string {
	ct := a.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		mediaType, params = "application/octet-stream", map[string]string{}
	}
	params["name"] = a.Filename
	if formatted := mime.FormatMediaType(mediaType, params); formatted != "" {
		return formatted
	}
	return mediaType
}

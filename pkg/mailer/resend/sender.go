package resend

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

const providerName = "resend"

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("resend: api key is required")

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
}

// Option configures a Sender.
type Option func(*options)

type options struct {
	httpClient *http.Client
	baseURL    string
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// New creates a new Resend sender.
func New(cfg Config, opts ...Option) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	o := options{httpClient: http.DefaultClient, baseURL: cfg.BaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	client := resend.NewCustomClient(o.httpClient, cfg.APIKey)
	if o.baseURL != "" {
		if !strings.HasSuffix(o.baseURL, "/") {
			o.baseURL += "/"
		}
		u, err := url.Parse(o.baseURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = u
	}

	return &Sender{client: client}, nil
}

// Connector returns a mailer.Connector that builds the sender on first use.
func Connector(cfg Config, opts ...Option) mailer.Connector {
	return mailer.ConnectorFunc(func(context.Context) (mailer.Sender, error) {
		return New(cfg, opts...)
	})
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
	if len(email.To) == 0 {
		return nil, mailer.ErrNoRecipient
	}

	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}

	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}

	resp, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return nil, mailer.NewProviderError(providerName, err)
	}

	return &mailer.Receipt{Provider: providerName, ID: resp.Id}, nil
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
		}
	}
	return result
}

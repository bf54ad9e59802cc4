// Package gmail delivers messages through the Gmail API users.messages.send call.
package gmail

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

const (
	providerName = "gmail"

	// Me is the Gmail API alias for the authenticated user.
	Me = "me"
)

// TokenSourceProvider yields the OAuth token source used to authorize API calls.
type TokenSourceProvider interface {
	TokenSource(ctx context.Context) (oauth2.TokenSource, error)
}

// Sender implements mailer.Sender for the Gmail API.
type Sender struct {
	svc    *gmailapi.Service
	userID string
}

// New creates a Sender from Gmail API client options.
func New(ctx context.Context, opts ...option.ClientOption) (*Sender, error) {
	svc, err := gmailapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gmail: create service: %w", err)
	}
	return &Sender{svc: svc, userID: Me}, nil
}

// Connector resolves credentials through p and builds a Sender.
// Extra client options are appended after the token source.
func Connector(p TokenSourceProvider, opts ...option.ClientOption) mailer.Connector {
	return mailer.ConnectorFunc(func(ctx context.Context) (mailer.Sender, error) {
		ts, err := p.TokenSource(ctx)
		if err != nil {
			return nil, err
		}
		return New(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
	})
}

// Send composes the email and submits it as a base64url raw message.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
	raw, err := mailer.Compose(email, mailer.ComposeOptions{})
	if err != nil {
		return nil, err
	}

	msg, err := s.svc.Users.Messages.
		Send(s.userID, &gmailapi.Message{Raw: mailer.EncodeRaw(raw)}).
		Context(ctx).
		Do()
	if err != nil {
		return nil, providerError(err)
	}

	return &mailer.Receipt{Provider: providerName, ID: msg.Id}, nil
}

// providerError keeps the API's own message so quota errors stay readable.
func providerError(err error) *mailer.ProviderError {
	pe := mailer.NewProviderError(providerName, err)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		pe.Message = fmt.Sprintf("%d %s", apiErr.Code, apiErr.Message)
	}
	return pe
}

// Package ses delivers messages through Amazon SES SendRawEmail.
package ses

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

const providerName = "ses"

// Config holds SES provider configuration.
// Credentials come from the default AWS chain.
type Config struct {
	Region string `yaml:"region" env:"REGION"`
}

// API is the subset of the SES client used by Sender.
type API interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// Sender implements mailer.Sender using SES raw messages.
type Sender struct {
	api API
}

// New creates a Sender backed by the given SES client.
func New(api API) *Sender {
	return &Sender{api: api}
}

// Connector loads AWS configuration and builds a Sender when the run starts.
func Connector(cfg Config) mailer.Connector {
	return mailer.ConnectorFunc(func(ctx context.Context) (mailer.Sender, error) {
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("ses: load aws config: %w", err)
		}
		return New(ses.NewFromConfig(awsCfg)), nil
	})
}

// Send composes the email and submits it with SendRawEmail.
// Bcc recipients are passed as destinations since they are not in the headers.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
	raw, err := mailer.Compose(email, mailer.ComposeOptions{})
	if err != nil {
		return nil, err
	}

	input := &ses.SendRawEmailInput{
		RawMessage: &types.RawMessage{Data: raw},
	}
	// SES expects bare addresses here; display names stay in the raw headers.
	if email.From != "" {
		from, err := mailer.ParseAddress(email.From)
		if err != nil {
			return nil, fmt.Errorf("%w: From %q: %w", mailer.ErrInvalidAddress, email.From, err)
		}
		input.Source = aws.String(from)
	}
	if len(email.BCC) > 0 {
		for _, group := range [][]string{email.To, email.CC, email.BCC} {
			for _, rcpt := range group {
				addr, err := mailer.ParseAddress(rcpt)
				if err != nil {
					return nil, fmt.Errorf("%w: %q: %w", mailer.ErrInvalidAddress, rcpt, err)
				}
				input.Destinations = append(input.Destinations, addr)
			}
		}
	}

	out, err := s.api.SendRawEmail(ctx, input)
	if err != nil {
		return nil, providerError(err)
	}

	return &mailer.Receipt{Provider: providerName, ID: aws.ToString(out.MessageId)}, nil
}

func providerError(err error) *mailer.ProviderError {
	pe := mailer.NewProviderError(providerName, err)
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		pe.Message = fmt.Sprintf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return pe
}

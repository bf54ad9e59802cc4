// Package smtp delivers messages over an authenticated SMTP session.
package smtp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-mail/mail"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

const providerName = "smtp"

// ErrMissingHost is returned when no SMTP host is configured.
var ErrMissingHost = errors.New("smtp: host is required")

// Config holds SMTP connection settings.
type Config struct {
	Host     string        `yaml:"host" env:"HOST"`
	Port     int           `yaml:"port" env:"PORT"`
	Username string        `yaml:"username" env:"USERNAME"`
	Password string        `yaml:"password" env:"PASSWORD"`
	Timeout  time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// Dialer opens an SMTP session. *mail.Dialer satisfies it.
type Dialer interface {
	Dial() (mail.SendCloser, error)
}

// NewDialer builds a go-mail dialer from cfg.
func NewDialer(cfg Config) (*mail.Dialer, error) {
	if cfg.Host == "" {
		return nil, ErrMissingHost
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	d := mail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password)
	if cfg.Timeout > 0 {
		d.Timeout = cfg.Timeout
	}
	return d, nil
}

// Sender implements mailer.Sender over a single SMTP session.
// Sends are serialized; call Close when the batch ends.
type Sender struct {
	mu   sync.Mutex
	conn mail.SendCloser
}

// New dials once and returns a Sender bound to that session.
func New(d Dialer) (*Sender, error) {
	conn, err := d.Dial()
	if err != nil {
		return nil, fmt.Errorf("smtp: dial: %w", err)
	}
	return &Sender{conn: conn}, nil
}

// Connector dials the configured server when the run starts.
func Connector(cfg Config) mailer.Connector {
	return mailer.ConnectorFunc(func(context.Context) (mailer.Sender, error) {
		d, err := NewDialer(cfg)
		if err != nil {
			return nil, err
		}
		return New(d)
	})
}

// Send writes the email to the session. The receipt ID is the generated Message-ID.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := mailer.NewMessageID(email.From)
	m, err := mailer.BuildMessage(email, mailer.ComposeOptions{MessageID: id})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := mail.Send(s.conn, m); err != nil {
		return nil, mailer.NewProviderError(providerName, err)
	}
	return &mailer.Receipt{Provider: providerName, ID: id}, nil
}

// Close ends the SMTP session.
func (s *Sender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

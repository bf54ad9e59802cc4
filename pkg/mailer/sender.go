package mailer

import "context"

// Sender defines the minimal interface that email providers must implement.
// It accepts a fully-prepared Email and handles the actual delivery.
type Sender interface {
	// Send delivers an email message.
	// Failures are reported as *ProviderError.
	Send(ctx context.Context, email *Email) (*Receipt, error)
}

// Connector acquires an authenticated Sender.
// It may block on interactive steps and is called once per batch run.
type Connector interface {
	Connect(ctx context.Context) (Sender, error)
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func(ctx context.Context) (Sender, error)

// Connect implements Connector.
func (f ConnectorFunc) Connect(ctx context.Context) (Sender, error) {
	return f(ctx)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) (*Receipt, error)

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, email *Email) (*Receipt, error) {
	return f(ctx, email)
}

// Package mailer provides the provider-neutral email model and the pieces needed
// to turn a rendered template into something a provider can deliver.
//
// # Architecture
//
// The package consists of four parts:
//
//   - Email and Attachment: the fully-prepared message handed to a provider
//   - Sender and Connector: the provider interface and its once-per-run acquisition
//   - Markdown: converts a plain-text/markdown body into the HTML alternative
//   - Compose: renders an Email as an RFC 5322 message for raw-message APIs
//
// Provider implementations live in sub-packages: gmail, resend, ses and smtp.
//
// # Usage
//
//	md := mailer.NewMarkdown(mailer.WithSanitizer(sanitizer.SanitizeEmailHTML))
//
//	html, err := md.Convert("Welcome", "Hello **Ann**,\n\n[!button|Open](https://example.com)")
//	if err != nil {
//		return err
//	}
//
//	receipt, err := sender.Send(ctx, &mailer.Email{
//		To:      []string{"ann@example.com"},
//		From:    mailer.Recipient("Team", "team@example.com"),
//		Subject: "Welcome",
//		Text:    "Hello **Ann**",
//		HTML:    html,
//	})
//
// # Templates
//
// Template files may begin with YAML frontmatter; ParseTemplate separates it from the body:
//
//	---
//	Subject: Welcome {name}
//	---
//	Hello {name},
//
// # Custom Providers
//
// Implement the Sender interface and report failures with NewProviderError so callers
// can match them with errors.Is(err, mailer.ErrSendFailed):
//
//	type MySender struct{}
//
//	func (s *MySender) Send(ctx context.Context, email *mailer.Email) (*mailer.Receipt, error) {
//		id, err := deliver(ctx, email)
//		if err != nil {
//			return nil, mailer.NewProviderError("my-provider", err)
//		}
//		return &mailer.Receipt{Provider: "my-provider", ID: id}, nil
//	}
package mailer

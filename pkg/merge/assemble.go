package merge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/sanitizer"
	"github.com/dmitrymomot/mailmerge/pkg/storage"
)

// DefaultRecipientField is the row field holding the recipient address.
const DefaultRecipientField = "email"

// AssemblerOptions configures message assembly.
type AssemblerOptions struct {
	// HTMLAlternative adds a text/html part converted from the body as markdown.
	HTMLAlternative bool

	// AttachmentPatterns are location formats resolved per row, in order.
	AttachmentPatterns []string

	// Sender is the From address, "Name <addr>" allowed. Empty lets the provider fill it.
	Sender string

	// RecipientField names the row field with the To address (default "email").
	RecipientField string

	// Layout is the path of an html/template file wrapping the HTML alternative.
	Layout string

	// Headers are added to every message.
	Headers map[string]string
}

// Assembly is an assembled message and the warnings raised while building it.
type Assembly struct {
	Email    *mailer.Email
	Warnings []Warning
}

// Assembler builds one mailer.Email per row.
type Assembler struct {
	opts     AssemblerOptions
	patterns []*Pattern
	resolver *Resolver
	markdown *mailer.Markdown
}

// NewAssembler validates opts and compiles the attachment patterns.
// Attachments are fetched from source.
func NewAssembler(opts AssemblerOptions, source storage.Source, log *slog.Logger) (*Assembler, error) {
	if opts.RecipientField == "" {
		opts.RecipientField = DefaultRecipientField
	}
	if opts.Sender != "" {
		if _, err := mailer.ParseAddress(opts.Sender); err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidSender, opts.Sender, err)
		}
	}

	patterns, err := CompileAll(opts.AttachmentPatterns)
	if err != nil {
		return nil, fmt.Errorf("attachment: %w", err)
	}

	a := &Assembler{
		opts:     opts,
		patterns: patterns,
		resolver: NewResolver(source, log),
	}

	if opts.HTMLAlternative {
		mdOpts := []mailer.MarkdownOption{mailer.WithSanitizer(sanitizer.SanitizeEmailHTML)}
		if opts.Layout != "" {
			layout, err := mailer.LoadLayout(os.DirFS(filepath.Dir(opts.Layout)), filepath.Base(opts.Layout))
			if err != nil {
				return nil, err
			}
			mdOpts = append(mdOpts, mailer.WithLayout(layout))
		}
		a.markdown = mailer.NewMarkdown(mdOpts...)
	}

	return a, nil
}

// Recipient returns the raw recipient value of row, trimmed.
func (a *Assembler) Recipient(row Row) string {
	v, _ := row.Get(a.opts.RecipientField)
	return strings.TrimSpace(v)
}

// Assemble builds the message for row from the rendered subject and body.
// It fails with ErrRecipientMissing or ErrRecipientInvalid before touching attachments.
func (a *Assembler) Assemble(ctx context.Context, row Row, subject, body string) (*Assembly, error) {
	to := a.Recipient(row)
	if to == "" {
		return nil, ErrRecipientMissing
	}
	if _, err := mailer.ParseAddress(to); err != nil {
		return nil, fmt.Errorf("%w %q", ErrRecipientInvalid, to)
	}

	attachments, warnings, err := a.resolver.Resolve(ctx, row, a.patterns)
	if err != nil {
		return &Assembly{Warnings: warnings}, err
	}

	email := &mailer.Email{
		To:          []string{to},
		From:        a.opts.Sender,
		Subject:     subject,
		Text:        body,
		Headers:     a.opts.Headers,
		Attachments: attachments,
	}

	if a.markdown != nil {
		html, err := a.markdown.Convert(subject, body)
		if err != nil {
			return &Assembly{Warnings: warnings}, err
		}
		email.HTML = html
	}

	return &Assembly{Email: email, Warnings: warnings}, nil
}

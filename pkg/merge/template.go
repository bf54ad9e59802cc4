package merge

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

// Template is a compiled subject and body pair.
type Template struct {
	Subject *Pattern
	Body    *Pattern
}

// NewTemplate compiles the subject and body formats.
func NewTemplate(subject, body string) (*Template, error) {
	s, err := Compile(subject)
	if err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}
	b, err := Compile(body)
	if err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}
	return &Template{Subject: s, Body: b}, nil
}

// ParseTemplate builds a Template from the contents of a template file.
// The subject is taken from subject if set, then from the frontmatter
// "Subject" key, then from fallback.
func ParseTemplate(content []byte, subject, fallback string) (*Template, error) {
	tpl, err := mailer.ParseTemplate(content)
	if err != nil {
		return nil, err
	}

	if subject == "" {
		subject = tpl.Subject()
	}
	if subject == "" {
		subject = fallback
	}
	if strings.TrimSpace(subject) == "" {
		return nil, ErrNoSubject
	}

	return NewTemplate(subject, tpl.Body)
}

// LoadTemplate reads and parses the template file at path.
func LoadTemplate(path, subject, fallback string) (*Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return ParseTemplate(content, subject, fallback)
}

// Render fills the subject and body with row values.
func (t *Template) Render(row Row) (subject, body string, err error) {
	if subject, err = t.Subject.Execute(row); err != nil {
		return "", "", err
	}
	if body, err = t.Body.Execute(row); err != nil {
		return "", "", err
	}
	return subject, body, nil
}

// Fields returns the field names referenced by the subject and body.
func (t *Template) Fields() []string {
	names := t.Subject.Fields()
	for _, f := range t.Body.Fields() {
		if !slices.Contains(names, f) {
			names = append(names, f)
		}
	}
	return names
}

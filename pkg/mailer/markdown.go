package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown converts a rendered plain-text body into the HTML alternative part.
// The zero value is not usable; create one with NewMarkdown.
type Markdown struct {
	md       goldmark.Markdown
	layout   *template.Template
	sanitize func(string) string
}

// MarkdownOption configures a Markdown converter.
type MarkdownOption func(*markdownOptions)

type markdownOptions struct {
	layout      *template.Template
	sanitize    func(string) string
	buttonClass string
	softBreaks  bool
}

// WithLayout wraps converted content in an html/template layout.
// The layout receives .Content (template.HTML) and .Subject.
func WithLayout(layout *template.Template) MarkdownOption {
	return func(o *markdownOptions) {
		o.layout = layout
	}
}

// WithSanitizer filters converted HTML before it is placed into the layout.
func WithSanitizer(fn func(string) string) MarkdownOption {
	return func(o *markdownOptions) {
		o.sanitize = fn
	}
}

// WithButtonClass sets the CSS class used for [!button|...] links.
func WithButtonClass(class string) MarkdownOption {
	return func(o *markdownOptions) {
		o.buttonClass = class
	}
}

// WithSoftLineBreaks keeps single newlines as soft breaks (standard markdown).
// By default single newlines become <br>, matching how plain-text letters read.
func WithSoftLineBreaks() MarkdownOption {
	return func(o *markdownOptions) {
		o.softBreaks = true
	}
}

// NewMarkdown creates a converter with GFM and the button extension enabled.
func NewMarkdown(opts ...MarkdownOption) *Markdown {
	var o markdownOptions
	for _, opt := range opts {
		opt(&o)
	}

	rendererOpts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM, NewButtonExtension(o.buttonClass)),
	}
	if !o.softBreaks {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithHardWraps()))
	}

	return &Markdown{
		md:       goldmark.New(rendererOpts...),
		layout:   o.layout,
		sanitize: o.sanitize,
	}
}

// Convert renders body as HTML. subject is exposed to the layout only.
func (m *Markdown) Convert(subject, body string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("%w: failed to convert markdown: %v", ErrRenderFailed, err)
	}

	content := buf.String()
	if m.sanitize != nil {
		content = m.sanitize(content)
	}
	if m.layout == nil {
		return content, nil
	}

	var out bytes.Buffer
	data := map[string]any{
		"Content": template.HTML(content), //nolint:gosec // sanitized above when configured
		"Subject": subject,
	}
	if err := m.layout.Execute(&out, data); err != nil {
		return "", fmt.Errorf("%w: failed to execute layout: %v", ErrRenderFailed, err)
	}
	return out.String(), nil
}

// LoadLayout parses an html/template layout from filesystem.
func LoadLayout(filesystem fs.FS, name string) (*template.Template, error) {
	content, err := fs.ReadFile(filesystem, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	layout, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse layout: %v", ErrRenderFailed, err)
	}
	return layout, nil
}

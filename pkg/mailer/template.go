package mailer

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	utf8BOM          = []byte{0xEF, 0xBB, 0xBF}
	frontmatterDelim = "---"
)

// Template represents a message template file: optional YAML frontmatter and a body.
type Template struct {
	Metadata map[string]any
	Body     string
}

// Subject returns the subject declared in the frontmatter ("Subject" or "subject").
func (t *Template) Subject() string {
	for _, key := range []string{"Subject", "subject"} {
		if s, ok := t.Metadata[key].(string); ok {
			return s
		}
	}
	return ""
}

// ParseTemplate splits template content into frontmatter metadata and body.
// Frontmatter is recognized only when the first line is exactly "---";
// it ends at the next line that is exactly "---".
func ParseTemplate(content []byte) (*Template, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	first, rest, more := cutLine(content)
	if !isDelimiter(first) {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}
	if !more {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	var front bytes.Buffer
	for {
		line, next, more := cutLine(rest)
		if isDelimiter(line) {
			meta, err := parseMetadata(front.Bytes())
			if err != nil {
				return nil, err
			}
			return &Template{Metadata: meta, Body: string(next)}, nil
		}
		if !more {
			return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
		}
		front.Write(line)
		front.WriteByte('\n')
		rest = next
	}
}

func parseMetadata(src []byte) (map[string]any, error) {
	meta := map[string]any{}
	if len(bytes.TrimSpace(src)) == 0 {
		return meta, nil
	}
	if err := yaml.Unmarshal(src, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
	}
	return meta, nil
}

// cutLine returns the first line without its terminator (\n or \r\n).
func cutLine(b []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}

func isDelimiter(line []byte) bool {
	return strings.TrimRight(string(line), " \t") == frontmatterDelim
}

package merge

import (
	"fmt"
	"strings"
)

// Pattern is a compiled format string with {field} placeholders.
// "{{" and "}}" produce literal braces. Everything between the braces,
// colons included, is the field name.
type Pattern struct {
	src      string
	segments []segment
}

type segment struct {
	text  string
	field bool
}

// Compile parses a format string.
// Unclosed or empty placeholders and unmatched "}" return ErrTemplateSyntax.
func Compile(src string) (*Pattern, error) {
	p := &Pattern{src: src}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			p.segments = append(p.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexAny(src[i+1:], "{}")
			if end < 0 || src[i+1+end] != '}' {
				return nil, fmt.Errorf("%w: unclosed placeholder at offset %d in %q", ErrTemplateSyntax, i, src)
			}
			name := src[i+1 : i+1+end]
			if name == "" {
				return nil, fmt.Errorf("%w: empty placeholder at offset %d in %q", ErrTemplateSyntax, i, src)
			}
			flush()
			p.segments = append(p.segments, segment{text: name, field: true})
			i += end + 1
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("%w: single '}' at offset %d in %q", ErrTemplateSyntax, i, src)
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Pattern {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Execute substitutes row values into the pattern.
// The first placeholder naming an absent field returns *MissingFieldError.
func (p *Pattern) Execute(row Row) (string, error) {
	var b strings.Builder
	b.Grow(len(p.src))
	for _, s := range p.segments {
		if !s.field {
			b.WriteString(s.text)
			continue
		}
		v, ok := row.Get(s.text)
		if !ok {
			return "", &MissingFieldError{Field: s.text}
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

// Fields returns the placeholder names in order of first appearance.
func (p *Pattern) Fields() []string {
	var names []string
	seen := map[string]bool{}
	for _, s := range p.segments {
		if s.field && !seen[s.text] {
			seen[s.text] = true
			names = append(names, s.text)
		}
	}
	return names
}

// String returns the source format string.
func (p *Pattern) String() string {
	return p.src
}

// Format compiles format and executes it against row.
func Format(format string, row Row) (string, error) {
	p, err := Compile(format)
	if err != nil {
		return "", err
	}
	return p.Execute(row)
}

// CompileAll compiles each format string in order.
func CompileAll(srcs []string) ([]*Pattern, error) {
	patterns := make([]*Pattern, 0, len(srcs))
	for _, src := range srcs {
		p, err := Compile(src)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// DefaultButtonClass is the CSS class put on rendered call-to-action links.
const DefaultButtonClass = "button"

var buttonPrefix = []byte("[!button|")

// KindButton is the node kind for Button.
var KindButton = ast.NewNodeKind("Button")

// Button is an inline call-to-action link written as [!button|Label](URL).
type Button struct {
	ast.BaseInline
	Label       []byte
	Destination []byte
}

// Kind implements ast.Node.
func (n *Button) Kind() ast.NodeKind {
	return KindButton
}

// Dump implements ast.Node.
func (n *Button) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Label":       string(n.Label),
		"Destination": string(n.Destination),
	}, nil)
}

type buttonParser struct{}

// NewButtonParser returns the inline parser for button syntax.
func NewButtonParser() parser.InlineParser {
	return buttonParser{}
}

func (buttonParser) Trigger() []byte {
	return []byte{'['}
}

func (buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, buttonPrefix) {
		return nil
	}

	rest := line[len(buttonPrefix):]
	label, after, ok := bytes.Cut(rest, []byte("]("))
	if !ok || bytes.ContainsAny(label, "[]") {
		return nil
	}
	dest, _, ok := bytes.Cut(after, []byte(")"))
	if !ok || len(bytes.TrimSpace(dest)) == 0 {
		return nil
	}

	consumed := len(buttonPrefix) + len(label) + 2 + len(dest) + 1
	block.Advance(consumed)

	return &Button{
		Label:       label,
		Destination: bytes.TrimSpace(dest),
	}
}

type buttonRenderer struct {
	class string
}

func (r buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, r.render)
}

func (r buttonRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*Button)

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	_, _ = w.WriteString(`" class="`)
	_, _ = w.Write(util.EscapeHTML([]byte(r.class)))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)
	return ast.WalkSkipChildren, nil
}

type buttonExtension struct {
	class string
}

// NewButtonExtension returns a goldmark extension rendering [!button|Label](URL)
// as a link carrying the given CSS class (DefaultButtonClass when empty).
func NewButtonExtension(class string) goldmark.Extender {
	if class == "" {
		class = DefaultButtonClass
	}
	return buttonExtension{class: class}
}

func (e buttonExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewButtonParser(), 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(buttonRenderer{class: e.class}, 50),
	))
}

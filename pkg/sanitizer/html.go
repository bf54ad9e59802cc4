package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy *bluemonday.Policy
	initOnce    sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		emailPolicy = EmailPolicy()
	})
}

// EmailPolicy returns a fresh policy for markdown-rendered email bodies.
// It starts from bluemonday's UGC policy, keeps class attributes so
// rendered buttons can be styled, and leaves links followable.
func EmailPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("a", "p", "div", "span", "table", "td", "th")
	p.RequireNoFollowOnLinks(false)
	p.RequireNoFollowOnFullyQualifiedLinks(false)
	return p
}

// SanitizeEmailHTML strips scripts, event handlers and unsafe URLs from an
// HTML email body while keeping formatting, tables, images and links.
func SanitizeEmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

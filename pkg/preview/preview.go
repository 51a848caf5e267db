package preview

import (
	"bytes"
	"regexp"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Entry is one locale's value of a translation key.
type Entry struct {
	Locale   string
	Value    string
	Location string // "lang/en/auth.php:3:4", optional
}

// Markdown renders a hover table with one row per entry, sorted by locale.
//
//	**auth.failed**
//
//	| Locale | Translation |
//	|---|---|
//	| en | These credentials do not match our records. |
func Markdown(key string, entries []Entry) string {
	var b strings.Builder
	b.WriteString("**")
	b.WriteString(escapeInline(key))
	b.WriteString("**\n\n")

	if len(entries) == 0 {
		b.WriteString("_No translation found._\n")
		return b.String()
	}

	withLocation := slices.ContainsFunc(entries, func(e Entry) bool { return e.Location != "" })
	if withLocation {
		b.WriteString("| Locale | Translation | Location |\n|---|---|---|\n")
	} else {
		b.WriteString("| Locale | Translation |\n|---|---|\n")
	}

	for _, e := range sorted(entries) {
		b.WriteString("| ")
		b.WriteString(escapeCell(e.Locale))
		b.WriteString(" | ")
		b.WriteString(escapeCell(e.Value))
		if withLocation {
			b.WriteString(" | `")
			b.WriteString(strings.ReplaceAll(e.Location, "`", ""))
			b.WriteString("`")
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

// Renderer turns hover markdown into sanitized HTML.
// It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPolicy replaces the default sanitizing policy.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if p != nil {
			r.policy = p
		}
	}
}

// NewRenderer creates a Renderer with GitHub-style tables enabled.
// Raw HTML in values passes through goldmark and is left to the policy.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var alignRe = regexp.MustCompile(`^(left|right|center)$`)

// DefaultPolicy allows basic formatting and tables.
// Translation values are user content, so links get rel="nofollow" and
// scripts, styles and event handlers are dropped.
func DefaultPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"p", "br",
		"strong", "b", "em", "i",
		"code", "pre",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("align").Matching(alignRe).OnElements("th", "td")
	p.RequireNoFollowOnLinks(true)
	return p
}

// HTML renders the hover table for key as sanitized HTML.
func (r *Renderer) HTML(key string, entries []Entry) (string, error) {
	return r.Render(Markdown(key, entries))
}

// Render converts arbitrary markdown to sanitized HTML.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return r.policy.Sanitize(buf.String()), nil
}

func sorted(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return strings.Compare(a.Locale, b.Locale)
	})
	return out
}

var cellReplacer = strings.NewReplacer(
	"|", `\|`,
	"\r\n", "<br>",
	"\n", "<br>",
)

func escapeCell(s string) string {
	return cellReplacer.Replace(s)
}

var inlineReplacer = strings.NewReplacer("*", `\*`, "_", `\_`)

func escapeInline(s string) string {
	return inlineReplacer.Replace(s)
}

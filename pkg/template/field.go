package template

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// Field is a deferred-template scalar. It starts out unrendered, holding only
// the raw template text; reading its value in that state fails with
// ErrNotRendered. Render produces a rendered copy that behaves like a plain
// string. Rendering is pure: the receiver is never mutated.
type Field struct {
	raw      string
	markdown bool
	rendered *string
}

// New returns an unrendered Field holding raw template text.
func New(raw string) Field {
	return Field{raw: raw}
}

// NewMarkdown returns an unrendered Field whose rendered output is converted
// from markdown to sanitised HTML.
func NewMarkdown(raw string) Field {
	return Field{raw: raw, markdown: true}
}

// Prerendered returns a Field already in the rendered state. Used for values
// that never contained template tags but travel through template-gated
// attributes.
func Prerendered(value string) Field {
	return Field{raw: value, rendered: &value}
}

// Raw returns the original template text. Always readable.
func (f Field) Raw() string { return f.raw }

// Markdown reports whether the rendered output goes through the markdown
// pipeline.
func (f Field) Markdown() bool { return f.markdown }

// IsRendered reports whether the field holds a final value.
func (f Field) IsRendered() bool { return f.rendered != nil }

// Value returns the rendered output, or ErrNotRendered while the field still
// holds raw template text.
func (f Field) Value() (string, error) {
	if f.rendered == nil {
		return "", ErrNotRendered
	}
	return *f.rendered, nil
}

// Render expands the raw text against context using r and returns the
// rendered Field. Markdown-flagged fields additionally convert the expanded
// text to sanitised HTML.
func (f Field) Render(r Renderer, context map[string]any) (Field, error) {
	out, err := r.Render(f.raw, context)
	if err != nil {
		return Field{}, err
	}
	if f.markdown {
		out = renderMarkdown(out)
	}
	return Field{raw: f.raw, markdown: f.markdown, rendered: &out}, nil
}

// Equal reports field equality: both unrendered with identical raw text, or
// both rendered with equal output.
func (f Field) Equal(other Field) bool {
	if f.IsRendered() != other.IsRendered() {
		return false
	}
	if !f.IsRendered() {
		return f.raw == other.raw
	}
	return *f.rendered == *other.rendered
}

var sanitizer = bluemonday.UGCPolicy()

func renderMarkdown(text string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.ToHTML([]byte(text), p, renderer)
	return strings.TrimSpace(sanitizer.Sanitize(string(out)))
}

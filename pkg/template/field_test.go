package template_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-content/pkg/template"
)

func substituting(pairs map[string]string) template.Renderer {
	return template.RendererFunc(func(text string, context map[string]any) (string, error) {
		out := text
		for name, value := range pairs {
			if _, ok := context[name]; !ok {
				return "", &template.MissingVariableError{Variable: name}
			}
			out = strings.ReplaceAll(out, "{{ "+name+" }}", value)
		}
		return out, nil
	})
}

func TestFieldStates(t *testing.T) {
	f := template.New("Hello {{ name }}")

	if f.IsRendered() {
		t.Fatal("new field must start unrendered")
	}
	if _, err := f.Value(); !errors.Is(err, template.ErrNotRendered) {
		t.Fatalf("Value() error = %v, want ErrNotRendered", err)
	}
	if f.Raw() != "Hello {{ name }}" {
		t.Fatalf("Raw() = %q", f.Raw())
	}

	rendered, err := f.Render(substituting(map[string]string{"name": "world"}), map[string]any{"name": "world"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	value, err := rendered.Value()
	if err != nil {
		t.Fatalf("Value() after render error: %v", err)
	}
	if value != "Hello world" {
		t.Fatalf("Value() = %q", value)
	}

	// Rendering is pure: the receiver stays unrendered.
	if f.IsRendered() {
		t.Fatal("Render() mutated the receiver")
	}
}

func TestFieldRenderPropagatesMissingVariable(t *testing.T) {
	f := template.New("Hello {{ name }}")
	_, err := f.Render(substituting(map[string]string{"name": "world"}), map[string]any{})
	var missing *template.MissingVariableError
	if !errors.As(err, &missing) {
		t.Fatalf("Render() error = %v, want MissingVariableError", err)
	}
}

func TestFieldEquality(t *testing.T) {
	r := substituting(map[string]string{"name": "world"})
	ctx := map[string]any{"name": "world"}

	a := template.New("Hello {{ name }}")
	b := template.New("Hello {{ name }}")
	c := template.New("Goodbye {{ name }}")

	if !a.Equal(b) {
		t.Fatal("unrendered fields with identical raw text must be equal")
	}
	if a.Equal(c) {
		t.Fatal("unrendered fields with different raw text must differ")
	}

	ra, err := a.Render(r, ctx)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	rb, err := b.Render(r, ctx)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !ra.Equal(rb) {
		t.Fatal("rendered fields with equal output must be equal")
	}
	if a.Equal(ra) {
		t.Fatal("an unrendered field never equals a rendered one")
	}
}

func TestPrerendered(t *testing.T) {
	f := template.Prerendered("already done")
	value, err := f.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if value != "already done" {
		t.Fatalf("Value() = %q", value)
	}
}

func TestMarkdownRendering(t *testing.T) {
	f := template.NewMarkdown("Some **bold** advice")
	rendered, err := f.Render(substituting(nil), map[string]any{})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	value, err := rendered.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if !strings.Contains(value, "<strong>bold</strong>") {
		t.Fatalf("markdown output = %q, want bold markup", value)
	}
}

func TestMarkdownSanitisesHTML(t *testing.T) {
	f := template.NewMarkdown(`Click <script>alert("x")</script> here`)
	rendered, err := f.Render(substituting(nil), map[string]any{})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	value, err := rendered.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if strings.Contains(value, "<script>") {
		t.Fatalf("markdown output = %q, script tag survived sanitising", value)
	}
}

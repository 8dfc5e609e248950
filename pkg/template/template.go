package template

import (
	"errors"
	"fmt"
)

// ErrNotRendered is returned when the rendered value of a Field is read
// before the field went through a render step.
var ErrNotRendered = errors.New("template: field not rendered")

// MissingVariableError reports that the render context lacked a variable the
// template text references.
type MissingVariableError struct {
	Variable string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("template: missing context variable %q", e.Variable)
}

// Renderer expands raw template text against a context mapping. Implementations
// must fail with a MissingVariableError when the context lacks a variable the
// text references.
type Renderer interface {
	Render(text string, context map[string]any) (string, error)
}

// RendererFunc adapts a function into a Renderer.
type RendererFunc func(text string, context map[string]any) (string, error)

// Render delegates to the underlying function.
func (fn RendererFunc) Render(text string, context map[string]any) (string, error) {
	return fn(text, context)
}

// Package pongo provides the default template.Renderer backed by a
// pongo2 template set. pongo2's jinja-style syntax matches the syntax used in
// declarative questionnaire content.
package pongo

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-content/pkg/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	globals map[string]any
}

// WithGlobals seeds context values available to every render call. Per-call
// context entries win on collisions.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Engine renders template strings with a shared pongo2 template set. Unlike
// bare pongo2, Render fails with template.MissingVariableError when the
// context lacks a variable the text references, instead of silently expanding
// it to nothing.
type Engine struct {
	mu sync.RWMutex

	set     *pongo2.TemplateSet
	cache   map[string]*pongo2.Template
	globals map[string]any
}

var _ template.Renderer = (*Engine)(nil)

// New constructs an Engine using the provided options.
func New(options ...Option) *Engine {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	return &Engine{
		set:     pongo2.NewSet("content", nil),
		cache:   make(map[string]*pongo2.Template),
		globals: cfg.globals,
	}
}

// Render expands text against context.
func (e *Engine) Render(text string, context map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", fmt.Errorf("pongo: engine is nil")
	}

	merged := make(pongo2.Context, len(e.globals)+len(context))
	for key, value := range e.globals {
		merged[key] = value
	}
	for key, value := range context {
		merged[key] = value
	}

	for _, variable := range referencedVariables(text) {
		if _, ok := merged[variable]; !ok {
			return "", &template.MissingVariableError{Variable: variable}
		}
	}

	tmpl, err := e.getTemplate(text)
	if err != nil {
		return "", fmt.Errorf("pongo: parse template: %w", err)
	}

	out, err := tmpl.Execute(merged)
	if err != nil {
		return "", fmt.Errorf("pongo: execute template: %w", err)
	}
	return out, nil
}

func (e *Engine) getTemplate(text string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[text]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[text]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromString(text)
	if err != nil {
		return nil, err
	}
	e.cache[text] = tmpl
	return tmpl, nil
}

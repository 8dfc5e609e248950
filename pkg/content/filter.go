package content

import (
	"fmt"

	"github.com/goliatone/go-content/pkg/question"
	"github.com/goliatone/go-content/pkg/template"
	"github.com/goliatone/go-content/pkg/template/pongo"
)

// FilterOption configures a Filter call.
type FilterOption func(*filterConfig)

type filterConfig struct {
	inplace  bool
	renderer template.Renderer
}

// InPlace lets Filter mutate and return the receiver instead of a copy. The
// caller forfeits the original; the computed result is identical either way.
func InPlace() FilterOption {
	return func(cfg *filterConfig) {
		cfg.inplace = true
	}
}

// WithRenderer overrides the template engine used to render surviving
// templated fields. The default is a fresh pongo engine.
func WithRenderer(r template.Renderer) FilterOption {
	return func(cfg *filterConfig) {
		cfg.renderer = r
	}
}

func newFilterConfig(options []FilterOption) filterConfig {
	cfg := filterConfig{}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.renderer == nil {
		cfg.renderer = pongo.New()
	}
	return cfg
}

// Filter narrows the section to the questions whose dependency clauses are
// satisfied by ctx and renders every surviving templated field against the
// same context. A clause referencing a key absent from ctx fails closed.
// Filtering an already filtered section only ever narrows further.
func (s *Section) Filter(ctx map[string]any, options ...FilterOption) (*Section, error) {
	cfg := newFilterConfig(options)
	target := s
	if !cfg.inplace {
		target = s.Copy()
	}
	target.questions = filterQuestions(target.questions, ctx)
	if err := target.render(cfg.renderer, ctx); err != nil {
		return nil, err
	}
	target.filtered = true
	return target, nil
}

func (s *Section) render(r template.Renderer, ctx map[string]any) error {
	for attr, field := range map[string]*template.Field{
		"name":                     &s.name,
		"description":              &s.description,
		"summary_page_description": &s.summaryPageDescription,
	} {
		rendered, err := field.Render(r, ctx)
		if err != nil {
			return fmt.Errorf("content: section %q %s: %w", s.slug, attr, err)
		}
		*field = rendered
	}
	for _, q := range s.questions {
		if err := q.Render(r, ctx); err != nil {
			return fmt.Errorf("content: section %q: %w", s.slug, err)
		}
	}
	return nil
}

// filterQuestions is the pure inclusion core shared by the copy and in-place
// paths: it assumes the questions it mutates are owned by the caller. A
// composite question whose children all fail is dropped with them.
func filterQuestions(qs []question.Question, ctx map[string]any) []question.Question {
	var out []question.Question
	for _, q := range qs {
		if !q.MatchesContext(ctx) {
			continue
		}
		if mq, ok := q.(*question.Multiquestion); ok {
			kept := filterQuestions(mq.Children(), ctx)
			if len(kept) == 0 {
				continue
			}
			mq.SetChildren(kept)
		}
		out = append(out, q)
	}
	return out
}

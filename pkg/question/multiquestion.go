package question

import (
	"fmt"

	"github.com/goliatone/go-content/pkg/template"
)

// Multiquestion groups nested questions under a single schema node. It has no
// submission fields of its own: marshalling, field enumeration and value
// checks delegate to the nested questions and merge their results.
type Multiquestion struct {
	common
	children []Question
}

func newMultiquestion(c common, raw map[string]any) (*Multiquestion, error) {
	entries, ok := raw["questions"].([]any)
	if !ok {
		if typed, ok := raw["questions"].([]map[string]any); ok {
			qs, err := NewAll(typed)
			if err != nil {
				return nil, err
			}
			return &Multiquestion{common: c, children: qs}, nil
		}
		return nil, fmt.Errorf("question %q: questions must be a list, got %T", c.id, raw["questions"])
	}

	children := make([]Question, 0, len(entries))
	for i, entry := range entries {
		if nested, ok := entry.(Question); ok {
			children = append(children, nested)
			continue
		}
		def, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("question %q: nested question %d must be a mapping, got %T", c.id, i, entry)
		}
		nested, err := New(def)
		if err != nil {
			return nil, fmt.Errorf("question %q: nested question %d: %w", c.id, i, err)
		}
		children = append(children, nested)
	}
	return &Multiquestion{common: c, children: children}, nil
}

// Children returns the nested questions in declaration order.
func (q *Multiquestion) Children() []Question {
	return q.children
}

// SetChildren replaces the nested questions, preserving the slice given.
func (q *Multiquestion) SetChildren(children []Question) {
	q.children = children
}

func (q *Multiquestion) Copy() Question {
	dup := &Multiquestion{common: q.copyCommon()}
	dup.children = make([]Question, len(q.children))
	for i, child := range q.children {
		dup.children[i] = child.Copy()
	}
	return dup
}

func (q *Multiquestion) Render(r template.Renderer, ctx map[string]any) error {
	if err := q.common.Render(r, ctx); err != nil {
		return err
	}
	for _, child := range q.children {
		if err := child.Render(r, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (q *Multiquestion) FieldNames() ([]string, error) {
	var out []string
	for _, child := range q.children {
		names, err := child.FieldNames()
		if err != nil {
			return nil, err
		}
		out = append(out, names...)
	}
	return out, nil
}

func (q *Multiquestion) GetData(form Form) (map[string]any, error) {
	out := make(map[string]any)
	for _, child := range q.children {
		data, err := child.GetData(form)
		if err != nil {
			return nil, err
		}
		for key, value := range data {
			out[key] = value
		}
	}
	return out, nil
}

func (q *Multiquestion) UnformatData(data map[string]any) map[string]any {
	out := make(map[string]any)
	for _, child := range q.children {
		for key, value := range child.UnformatData(data) {
			out[key] = value
		}
	}
	return out
}

func (q *Multiquestion) HasValue(data map[string]any) bool {
	for _, child := range q.children {
		if child.HasValue(data) {
			return true
		}
	}
	return false
}

// SummaryValue returns the nested questions that hold an answer, in order.
func (q *Multiquestion) SummaryValue(data map[string]any) any {
	var answered []Question
	for _, child := range q.children {
		if child.HasValue(data) {
			answered = append(answered, child)
		}
	}
	return answered
}

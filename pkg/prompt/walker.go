// Package prompt walks filtered questionnaire content interactively on a
// terminal, producing the raw submission form that the question marshalling
// layer consumes. The terminal itself sits behind the Driver interface so
// walks can be scripted in tests.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-content/pkg/content"
	"github.com/goliatone/go-content/pkg/question"
)

// WalkOption configures a Walker.
type WalkOption func(*Walker)

// WithDriver swaps the terminal driver. The default drives a real terminal
// through survey.
func WithDriver(d Driver) WalkOption {
	return func(w *Walker) {
		if d != nil {
			w.driver = d
		}
	}
}

// Walker prompts for an answer to every question of a filtered section or
// manifest and collects the results as submitted form entries.
type Walker struct {
	driver Driver
}

// NewWalker builds a Walker with the given options.
func NewWalker(options ...WalkOption) *Walker {
	w := &Walker{driver: &surveyDriver{}}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// WalkManifest walks every section of a filtered manifest in order.
func (w *Walker) WalkManifest(ctx context.Context, m *content.Manifest) (question.Form, error) {
	var form question.Form
	for _, section := range m.Sections() {
		part, err := w.WalkSection(ctx, section)
		if err != nil {
			return nil, err
		}
		form = append(form, part...)
	}
	return form, nil
}

// WalkSection prompts for each question of a filtered section. The section
// must have been filtered first: walking an unfiltered section fails the same
// way reading its name does.
func (w *Walker) WalkSection(ctx context.Context, s *content.Section) (question.Form, error) {
	name, err := s.Name()
	if err != nil {
		return nil, fmt.Errorf("prompt: section %q: %w", s.Slug(), err)
	}
	if err := w.driver.Info(ctx, "== "+name); err != nil {
		return nil, err
	}

	var form question.Form
	for _, q := range s.Questions() {
		part, err := w.ask(ctx, q)
		if err != nil {
			return nil, err
		}
		form = append(form, part...)
	}
	return form, nil
}

func (w *Walker) ask(ctx context.Context, q question.Question) (question.Form, error) {
	var form question.Form

	switch typed := q.(type) {
	case *question.Multiquestion:
		if err := w.driver.Info(ctx, q.Text()); err != nil {
			return nil, err
		}
		for _, child := range typed.Children() {
			part, err := w.ask(ctx, child)
			if err != nil {
				return nil, err
			}
			form = append(form, part...)
		}
		return form, nil

	case *question.BooleanList:
		for i, item := range typed.ItemQuestions() {
			answer, err := w.driver.Confirm(ctx, ConfirmConfig{Message: item, Help: q.Hint()})
			if err != nil {
				return nil, err
			}
			form = append(form, question.Entry{
				Key:   fmt.Sprintf("%s-%d", q.ID(), i),
				Value: fmt.Sprint(answer),
			})
		}
		return form, nil

	case *question.Pricing:
		fields, err := typed.FieldNames()
		if err != nil {
			return nil, err
		}
		if err := w.driver.Info(ctx, q.Text()); err != nil {
			return nil, err
		}
		for _, field := range fields {
			answer, err := w.driver.Input(ctx, InputConfig{Message: field, Help: q.Hint()})
			if err != nil {
				return nil, err
			}
			if answer == "" {
				continue
			}
			form = append(form, question.Entry{Key: field, Value: answer})
		}
		return w.withAssurance(ctx, q, form)
	}

	switch q.Type() {
	case "boolean":
		answer, err := w.driver.Confirm(ctx, ConfirmConfig{Message: q.Text(), Help: q.Hint()})
		if err != nil {
			return nil, err
		}
		form = append(form, question.Entry{Key: q.ID(), Value: fmt.Sprint(answer)})

	case "radios":
		labels, values := optionPairs(q)
		picked, err := w.driver.Select(ctx, SelectConfig{Message: q.Text(), Options: labels, Help: q.Hint()})
		if err != nil {
			return nil, err
		}
		if picked >= 0 {
			form = append(form, question.Entry{Key: q.ID(), Value: values[picked]})
		}

	case "checkboxes":
		labels, values := optionPairs(q)
		picked, err := w.driver.MultiSelect(ctx, SelectConfig{Message: q.Text(), Options: labels, Help: q.Hint()})
		if err != nil {
			return nil, err
		}
		for _, index := range picked {
			form = append(form, question.Entry{Key: q.ID(), Value: values[index]})
		}

	case "list":
		if err := w.driver.Info(ctx, q.Text()+" (empty answer finishes the list)"); err != nil {
			return nil, err
		}
		for {
			answer, err := w.driver.Input(ctx, InputConfig{Message: q.ID(), Help: q.Hint()})
			if err != nil {
				return nil, err
			}
			if answer == "" {
				break
			}
			form = append(form, question.Entry{Key: q.ID(), Value: answer})
		}

	case "textbox_large":
		answer, err := w.driver.TextArea(ctx, TextAreaConfig{Message: q.Text(), Help: q.Hint()})
		if err != nil {
			return nil, err
		}
		if answer != "" {
			form = append(form, question.Entry{Key: q.ID(), Value: answer})
		}

	default:
		answer, err := w.driver.Input(ctx, InputConfig{Message: q.Text(), Help: q.Hint()})
		if err != nil {
			return nil, err
		}
		if answer != "" {
			form = append(form, question.Entry{Key: q.ID(), Value: answer})
		}
	}

	return w.withAssurance(ctx, q, form)
}

// withAssurance appends the assurance answer for assurance-carrying questions
// that received a value.
func (w *Walker) withAssurance(ctx context.Context, q question.Question, form question.Form) (question.Form, error) {
	if q.AssuranceApproach() == "" || len(form) == 0 {
		return form, nil
	}
	answer, err := w.driver.Input(ctx, InputConfig{
		Message: "How is this assured?",
		Help:    q.AssuranceApproach(),
	})
	if err != nil {
		return nil, err
	}
	if answer != "" {
		form = append(form, question.Entry{Key: q.ID() + "--assurance", Value: answer})
	}
	return form, nil
}

// optionPairs flattens a question's declared options into parallel label and
// value slices. Options without an explicit value submit their label.
func optionPairs(q question.Question) (labels, values []string) {
	raw, ok := q.Get("options").([]any)
	if !ok {
		return nil, nil
	}
	for _, entry := range raw {
		label, value := optionEntry(entry)
		if label == "" {
			continue
		}
		labels = append(labels, label)
		values = append(values, value)
	}
	return labels, values
}

func optionEntry(entry any) (label, value string) {
	switch option := entry.(type) {
	case string:
		return option, option
	case map[string]any:
		if raw, ok := option["label"]; ok {
			label = strings.TrimSpace(fmt.Sprint(raw))
		}
		value = label
		if raw, ok := option["value"]; ok {
			value = fmt.Sprint(raw)
		}
		return label, value
	default:
		return "", ""
	}
}

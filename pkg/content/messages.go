package content

import (
	"fmt"

	"github.com/goliatone/go-content/pkg/question"
)

// Message is one resolved validation error: the result key it is filed
// under, the owning question's descriptor, the message text, and the concrete
// input the error belongs to. A Marker message carries no text; it flags a
// boolean-list question whose per-item errors are reported separately.
type Message struct {
	Key       string
	Question  string
	Text      string
	InputName string
	Marker    bool
}

// Messages is an ordered list of resolved errors, following the question and
// field order of the section rather than the input error mapping.
type Messages []Message

// Get returns the first message filed under key.
func (ms Messages) Get(key string) (Message, bool) {
	for _, m := range ms {
		if m.Key == key {
			return m, true
		}
	}
	return Message{}, false
}

// Keys returns every message key in order.
func (ms Messages) Keys() []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Key)
	}
	return out
}

// MessageOption configures error-message resolution.
type MessageOption func(*messageConfig)

type messageConfig struct {
	descriptorFrom string
}

// WithQuestionDescriptor selects which question attribute fills the resolved
// message's Question field: "question" (the default) uses the question text,
// "label" the short name, falling back to the text.
func WithQuestionDescriptor(attr string) MessageOption {
	return func(cfg *messageConfig) {
		cfg.descriptorFrom = attr
	}
}

func newMessageConfig(options []MessageOption) messageConfig {
	cfg := messageConfig{descriptorFrom: "question"}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// ErrorMessages resolves a mapping of error keys (question id, pricing
// sub-field key, or "<id>--assurance") to error-kind codes against the
// section's questions. A key matching no question anywhere is a
// QuestionNotFoundError.
func (s *Section) ErrorMessages(errs map[string]string, options ...MessageOption) (Messages, error) {
	return resolveMessages(s.questions, errs, newMessageConfig(options), nil)
}

// ErrorMessages is Section.ErrorMessages with answer awareness: a
// boolean-list question with injected item questions additionally yields one
// message per missing item, keyed "<id>-<index>" and carrying the item's
// question text. A summary with no answer data treats every item as missing.
func (ss *SummarySection) ErrorMessages(errs map[string]string, options ...MessageOption) (Messages, error) {
	answers := ss.data
	if answers == nil {
		answers = map[string]any{}
	}
	return resolveMessages(ss.section.questions, errs, newMessageConfig(options), answers)
}

func resolveMessages(questions []question.Question, errs map[string]string, cfg messageConfig, answers map[string]any) (Messages, error) {
	consumed := make(map[string]bool, len(errs))
	var out Messages

	for _, q := range leafQuestions(questions) {
		if bl, ok := q.(*question.BooleanList); ok {
			kind, ok := errs[bl.ID()]
			if !ok {
				continue
			}
			consumed[bl.ID()] = true
			out = append(out, Message{Key: bl.ID(), Marker: true})
			if answers != nil {
				out = append(out, missingItemMessages(bl, kind, answers)...)
			}
			continue
		}

		names, err := q.FieldNames()
		if err != nil {
			return nil, err
		}
		for _, field := range names {
			kind, ok := errs[field]
			if !ok {
				continue
			}
			consumed[field] = true
			key := q.ID()
			input := field
			if field == q.ID() && kind == "assurance_required" {
				key = q.ID() + "--assurance"
				input = key
			}
			out = append(out, Message{
				Key:       key,
				Question:  descriptor(q, cfg),
				Text:      q.ErrorMessage(kind, field),
				InputName: input,
			})
		}

		assuranceKey := q.ID() + "--assurance"
		if kind, ok := errs[assuranceKey]; ok {
			consumed[assuranceKey] = true
			out = append(out, Message{
				Key:       assuranceKey,
				Question:  descriptor(q, cfg),
				Text:      q.ErrorMessage(kind, q.ID()),
				InputName: assuranceKey,
			})
		}
	}

	for key := range errs {
		if !consumed[key] {
			return nil, &QuestionNotFoundError{Key: key}
		}
	}
	return out, nil
}

// missingItemMessages expands a boolean-list error into one message per
// unanswered item, using the injected item question texts.
func missingItemMessages(bl *question.BooleanList, kind string, answers map[string]any) Messages {
	items := bl.ItemQuestions()
	if len(items) == 0 {
		return nil
	}
	values, _ := answers[bl.ID()].([]any)

	var out Messages
	for i, text := range items {
		if i < len(values) && values[i] != nil {
			continue
		}
		key := fmt.Sprintf("%s-%d", bl.ID(), i)
		out = append(out, Message{
			Key:       key,
			Question:  text,
			Text:      bl.ErrorMessage(kind, key),
			InputName: key,
		})
	}
	return out
}

func descriptor(q question.Question, cfg messageConfig) string {
	if cfg.descriptorFrom == "label" {
		if name := q.Name(); name != "" {
			return name
		}
	}
	return q.Text()
}

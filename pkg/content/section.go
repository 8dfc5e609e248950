package content

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-content/pkg/question"
	"github.com/goliatone/go-content/pkg/template"
)

// Section is an ordered group of questions rendered together, with its own
// visibility and editability metadata. Templated attributes (name,
// description, question texts) are readable only after Filter has rendered
// them; non-templated attributes such as the slug are always readable.
type Section struct {
	slug                   string
	name                   template.Field
	description            template.Field
	summaryPageDescription template.Field
	editable               bool
	editQuestions          bool
	prefill                *bool
	step                   int
	questions              []question.Question

	filtered bool
}

// NewSection builds a Section from a raw definition mapping. The question
// list is converted through question.New; the caller's containers are never
// retained.
func NewSection(raw map[string]any) (*Section, error) {
	s := &Section{
		slug:                   stringAt(raw, "slug"),
		name:                   fieldAt(raw, "name"),
		description:            fieldAt(raw, "description"),
		summaryPageDescription: fieldAt(raw, "summary_page_description"),
	}
	s.editable, _ = raw["editable"].(bool)
	s.editQuestions, _ = raw["edit_questions"].(bool)
	if prefill, ok := raw["prefill"].(bool); ok {
		s.prefill = &prefill
	}
	if step, ok := raw["step"].(int); ok {
		s.step = step
	}
	if s.slug == "" {
		s.slug = question.MakeSlug(s.name.Raw())
	}

	entries, ok := raw["questions"].([]any)
	if !ok {
		if typed, ok := raw["questions"].([]map[string]any); ok {
			entries = make([]any, len(typed))
			for i, entry := range typed {
				entries[i] = entry
			}
		} else if raw["questions"] != nil {
			return nil, fmt.Errorf("content: section %q: questions must be a list, got %T", s.slug, raw["questions"])
		}
	}
	for i, entry := range entries {
		if q, ok := entry.(question.Question); ok {
			s.questions = append(s.questions, q.Copy())
			continue
		}
		def, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("content: section %q: question %d must be a mapping, got %T", s.slug, i, entry)
		}
		q, err := question.New(def)
		if err != nil {
			return nil, fmt.Errorf("content: section %q: %w", s.slug, err)
		}
		s.questions = append(s.questions, q)
	}
	return s, nil
}

// ID is an alias for the section slug; sections are addressed by slug
// throughout manifest navigation.
func (s *Section) ID() string { return s.slug }

func (s *Section) Slug() string         { return s.slug }
func (s *Section) Editable() bool       { return s.editable }
func (s *Section) EditQuestions() bool  { return s.editQuestions }
func (s *Section) Step() int            { return s.step }

// Prefill returns the prefill flag and whether it was set at all.
func (s *Section) Prefill() (bool, bool) {
	if s.prefill == nil {
		return false, false
	}
	return *s.prefill, true
}

// Name returns the rendered section name. Before Filter has run the templated
// value does not exist yet and the call fails with template.ErrNotRendered.
func (s *Section) Name() (string, error) {
	return s.templated("name", s.name)
}

// Description returns the rendered section description, empty when the
// definition declares none.
func (s *Section) Description() (string, error) {
	return s.templated("description", s.description)
}

// SummaryPageDescription returns the rendered summary-page description,
// empty when the definition declares none.
func (s *Section) SummaryPageDescription() (string, error) {
	return s.templated("summary_page_description", s.summaryPageDescription)
}

func (s *Section) templated(attr string, f template.Field) (string, error) {
	if !s.filtered {
		return "", fmt.Errorf("content: section %q %s: %w", s.slug, attr, template.ErrNotRendered)
	}
	if value, err := f.Value(); err == nil {
		return value, nil
	}
	return f.Raw(), nil
}

// HasSummaryPage reports whether the section gets its own summary page: more
// than one question, or an explicit description.
func (s *Section) HasSummaryPage() bool {
	return len(s.questions) > 1 || fieldSet(s.description)
}

// fieldSet reports whether a templated attribute holds any text, rendered or
// not.
func fieldSet(f template.Field) bool {
	if value, err := f.Value(); err == nil {
		return value != ""
	}
	return f.Raw() != ""
}

// Questions returns the section's questions in document order. The returned
// slice is shared with the section; callers must not mutate it.
func (s *Section) Questions() []question.Question {
	return s.questions
}

// QuestionIDs returns the ids of every leaf question, flattening nested
// questions in place of their parent. A non-empty typeFilter keeps only
// questions of that declared type.
func (s *Section) QuestionIDs(typeFilter string) []string {
	var out []string
	for _, q := range leafQuestions(s.questions) {
		if typeFilter != "" && q.Type() != typeFilter {
			continue
		}
		out = append(out, q.ID())
	}
	return out
}

// Question finds a question by id, then by slug, searching top-level
// questions and nested children. It returns nil when nothing matches.
func (s *Section) Question(key string) question.Question {
	for _, q := range flattenQuestions(s.questions) {
		if q.ID() == key {
			return q
		}
	}
	for _, q := range flattenQuestions(s.questions) {
		if q.Slug() == key {
			return q
		}
	}
	return nil
}

// QuestionBySlug finds a question by slug only.
func (s *Section) QuestionBySlug(slug string) question.Question {
	for _, q := range flattenQuestions(s.questions) {
		if q.Slug() == slug {
			return q
		}
	}
	return nil
}

// NextQuestionID returns the id of the top-level question following current,
// or the first question's id when current is empty. Unknown ids and running
// off the end return the empty string.
func (s *Section) NextQuestionID(current string) string {
	return s.scanQuestions(current, +1, question.Question.ID)
}

// PreviousQuestionID is the reverse of NextQuestionID.
func (s *Section) PreviousQuestionID(current string) string {
	return s.scanQuestions(current, -1, question.Question.ID)
}

// NextQuestionSlug is NextQuestionID keyed and addressed by slug.
func (s *Section) NextQuestionSlug(current string) string {
	return s.scanQuestions(current, +1, question.Question.Slug)
}

// PreviousQuestionSlug is the reverse of NextQuestionSlug.
func (s *Section) PreviousQuestionSlug(current string) string {
	return s.scanQuestions(current, -1, question.Question.Slug)
}

func (s *Section) scanQuestions(current string, step int, key func(question.Question) string) string {
	if current == "" {
		if step > 0 && len(s.questions) > 0 {
			return key(s.questions[0])
		}
		return ""
	}
	for i, q := range s.questions {
		if key(q) != current {
			continue
		}
		next := i + step
		if next < 0 || next >= len(s.questions) {
			return ""
		}
		return key(s.questions[next])
	}
	return ""
}

// QuestionAsSection promotes the top-level question with the given slug into
// a standalone section: the question text becomes the name, the hint the
// description, and a composite question contributes its children as the
// section's questions. Editability comes from the parent's edit_questions
// flag. Unknown slugs yield nil.
func (s *Section) QuestionAsSection(slug string) *Section {
	var match question.Question
	for _, q := range s.questions {
		if q.Slug() == slug {
			match = q
			break
		}
	}
	if match == nil {
		return nil
	}

	promoted := &Section{
		slug:          match.Slug(),
		name:          template.Prerendered(match.Text()),
		description:   template.Prerendered(match.Hint()),
		editable:      s.editQuestions,
		editQuestions: false,
		prefill:       s.prefill,
		step:          s.step,
		filtered:      s.filtered,
	}
	if mq, ok := match.(*question.Multiquestion); ok {
		for _, child := range mq.Children() {
			promoted.questions = append(promoted.questions, child.Copy())
		}
	} else {
		promoted.questions = []question.Question{match.Copy()}
	}
	return promoted
}

// Copy returns a deep copy sharing no mutable state with the receiver.
func (s *Section) Copy() *Section {
	dup := *s
	dup.questions = make([]question.Question, len(s.questions))
	for i, q := range s.questions {
		dup.questions[i] = q.Copy()
	}
	return &dup
}

// GetData extracts and converts the section's answers from a raw submission.
// Form keys matching no declared field are dropped.
func (s *Section) GetData(form question.Form) (map[string]any, error) {
	out := make(map[string]any)
	for _, q := range s.questions {
		data, err := q.GetData(form)
		if err != nil {
			return nil, err
		}
		for key, value := range data {
			out[key] = value
		}
	}
	return out, nil
}

// UnformatData reconstructs the submission-shaped mapping the section's typed
// data came from. Unknown data keys are dropped.
func (s *Section) UnformatData(data map[string]any) map[string]any {
	out := make(map[string]any)
	for _, q := range s.questions {
		for key, value := range q.UnformatData(data) {
			out[key] = value
		}
	}
	return out
}

// FieldNames returns every concrete submission key the section's questions
// occupy.
func (s *Section) FieldNames() ([]string, error) {
	var out []string
	for _, q := range s.questions {
		names, err := q.FieldNames()
		if err != nil {
			return nil, err
		}
		out = append(out, names...)
	}
	return out, nil
}

// HasChangesToSave reports whether saving update against existing would
// change anything: a declared field absent from existing counts as a change,
// as does any update value differing from the existing one.
func (s *Section) HasChangesToSave(existing, update map[string]any) (bool, error) {
	names, err := s.FieldNames()
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if _, ok := existing[name]; !ok {
			return true, nil
		}
	}
	for key, value := range update {
		if !reflect.DeepEqual(existing[key], value) {
			return true, nil
		}
	}
	return false, nil
}

// InjectItemQuestions attaches externally supplied per-item question texts to
// the section's boolean-list questions, keyed by question id. A non-optional
// boolean-list question with no entry in texts is a NotFoundError; optional
// ones are skipped silently.
func (s *Section) InjectItemQuestions(texts map[string][]string) error {
	for _, q := range leafQuestions(s.questions) {
		bl, ok := q.(*question.BooleanList)
		if !ok {
			continue
		}
		items, ok := texts[bl.ID()]
		if !ok {
			if bl.Optional() {
				continue
			}
			return &NotFoundError{What: fmt.Sprintf("item questions for %q", bl.ID())}
		}
		bl.SetItemQuestions(items)
	}
	return nil
}

// leafQuestions flattens composite questions into their children, dropping
// the composite itself.
func leafQuestions(qs []question.Question) []question.Question {
	var out []question.Question
	for _, q := range qs {
		if mq, ok := q.(*question.Multiquestion); ok {
			out = append(out, leafQuestions(mq.Children())...)
			continue
		}
		out = append(out, q)
	}
	return out
}

// flattenQuestions keeps composites and appends their children after them.
func flattenQuestions(qs []question.Question) []question.Question {
	var out []question.Question
	for _, q := range qs {
		out = append(out, q)
		if mq, ok := q.(*question.Multiquestion); ok {
			out = append(out, flattenQuestions(mq.Children())...)
		}
	}
	return out
}

func stringAt(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

func fieldAt(raw map[string]any, key string) template.Field {
	switch typed := raw[key].(type) {
	case template.Field:
		return typed
	case string:
		return template.New(typed)
	default:
		return template.Field{}
	}
}

// trimStrings strips leading and trailing whitespace from every top-level
// string value, leaving internal whitespace intact.
func trimStrings(data map[string]any) map[string]any {
	for key, value := range data {
		if s, ok := value.(string); ok {
			data[key] = strings.TrimSpace(s)
		}
	}
	return data
}

package content

import (
	"fmt"

	"github.com/goliatone/go-content/pkg/question"
)

// Manifest is the full ordered collection of sections representing one
// questionnaire variant. It owns the sequential numbering of every leaf
// question, recomputed lazily whenever filtering changes the survivor set.
type Manifest struct {
	sections []*Section
	numbered bool
}

// NewManifest builds a Manifest from raw section definition mappings.
func NewManifest(raw []map[string]any) (*Manifest, error) {
	m := &Manifest{}
	for i, def := range raw {
		s, err := NewSection(def)
		if err != nil {
			return nil, fmt.Errorf("content: section %d: %w", i, err)
		}
		m.sections = append(m.sections, s)
	}
	return m, nil
}

// Sections returns the manifest's sections in document order.
func (m *Manifest) Sections() []*Section {
	m.ensureNumbers()
	return m.sections
}

// Section finds a section by slug, nil when absent.
func (m *Manifest) Section(slug string) *Section {
	m.ensureNumbers()
	for _, s := range m.sections {
		if s.slug == slug {
			return s
		}
	}
	return nil
}

// Question searches every section in order for a question matching key by id
// first, then by slug. Excluded questions are not found after filtering.
func (m *Manifest) Question(key string) question.Question {
	m.ensureNumbers()
	for _, s := range m.sections {
		for _, q := range flattenQuestions(s.questions) {
			if q.ID() == key {
				return q
			}
		}
	}
	for _, s := range m.sections {
		for _, q := range flattenQuestions(s.questions) {
			if q.Slug() == key {
				return q
			}
		}
	}
	return nil
}

// QuestionBySlug is the slug-only variant of Question.
func (m *Manifest) QuestionBySlug(slug string) question.Question {
	m.ensureNumbers()
	for _, s := range m.sections {
		if q := s.QuestionBySlug(slug); q != nil {
			return q
		}
	}
	return nil
}

// SectionForQuestion returns the section owning the question matching key.
func (m *Manifest) SectionForQuestion(key string) *Section {
	m.ensureNumbers()
	for _, s := range m.sections {
		if s.Question(key) != nil {
			return s
		}
	}
	return nil
}

// NextSectionID returns the slug of the section following current in document
// order, or the first section's slug when current is empty. No match yields
// the empty string, never an error.
func (m *Manifest) NextSectionID(current string) string {
	return m.scanSections(current, func(*Section) bool { return true })
}

// NextEditableSectionID is NextSectionID restricted to editable sections.
func (m *Manifest) NextEditableSectionID(current string) string {
	return m.scanSections(current, (*Section).Editable)
}

// NextEditQuestionsSectionID is NextSectionID restricted to sections whose
// individual questions are editable.
func (m *Manifest) NextEditQuestionsSectionID(current string) string {
	return m.scanSections(current, (*Section).EditQuestions)
}

func (m *Manifest) scanSections(current string, keep func(*Section) bool) string {
	start := 0
	if current != "" {
		start = len(m.sections)
		for i, s := range m.sections {
			if s.slug == current {
				start = i + 1
				break
			}
		}
	}
	for _, s := range m.sections[min(start, len(m.sections)):] {
		if keep(s) {
			return s.slug
		}
	}
	return ""
}

// Filter narrows every section against ctx, dropping sections left with no
// questions, and invalidates the cached question numbering.
func (m *Manifest) Filter(ctx map[string]any, options ...FilterOption) (*Manifest, error) {
	cfg := newFilterConfig(options)
	target := m
	if !cfg.inplace {
		target = m.Copy()
	}

	var kept []*Section
	for _, s := range target.sections {
		// Sections are already owned by target; narrow them in place.
		filtered, err := s.Filter(ctx, InPlace(), WithRenderer(cfg.renderer))
		if err != nil {
			return nil, err
		}
		if len(filtered.questions) == 0 {
			continue
		}
		kept = append(kept, filtered)
	}
	target.sections = kept
	target.numbered = false
	return target, nil
}

// Copy returns a deep copy sharing no mutable state with the receiver.
func (m *Manifest) Copy() *Manifest {
	dup := &Manifest{numbered: m.numbered}
	dup.sections = make([]*Section, len(m.sections))
	for i, s := range m.sections {
		dup.sections[i] = s.Copy()
	}
	return dup
}

// GetAllData merges GetData across every section into one mapping, then
// strips leading and trailing whitespace from every string value.
func (m *Manifest) GetAllData(form question.Form) (map[string]any, error) {
	out := make(map[string]any)
	for _, s := range m.sections {
		data, err := s.GetData(form)
		if err != nil {
			return nil, err
		}
		for key, value := range data {
			out[key] = value
		}
	}
	return trimStrings(out), nil
}

// InjectItemQuestions applies Section.InjectItemQuestions across the whole
// manifest.
func (m *Manifest) InjectItemQuestions(texts map[string][]string) error {
	for _, s := range m.sections {
		if err := s.InjectItemQuestions(texts); err != nil {
			return err
		}
	}
	return nil
}

// ensureNumbers assigns 1..N over the current leaf-question sequence in
// document order, flattening composite children in place of their parent.
// Numbers are never stable across different filter contexts.
func (m *Manifest) ensureNumbers() {
	if m.numbered {
		return
	}
	n := 0
	for _, s := range m.sections {
		for _, q := range leafQuestions(s.questions) {
			n++
			q.SetNumber(n)
		}
	}
	m.numbered = true
}

package content

import "github.com/goliatone/go-content/pkg/question"

// QuestionSummary is the answer-aware projection of a single question: its
// display value, whether an answer is still required, and any assurance text.
type QuestionSummary struct {
	question.Question
	data     map[string]any
	children []*QuestionSummary
}

// Value is the type-formatted display value for the question's answer. A
// missing scalar answer displays as the empty string; a composite question's
// value is the ordered projections of its answered children.
func (q *QuestionSummary) Value() any {
	if q.children != nil {
		answered := []*QuestionSummary{}
		for _, child := range q.children {
			if child.HasValue(q.data) {
				answered = append(answered, child)
			}
		}
		return answered
	}
	return q.SummaryValue(q.data)
}

// AnswerRequired reports whether the question still needs an answer: never
// for optional questions, otherwise whenever no value is present. A composite
// question requires an answer when any non-optional child does.
func (q *QuestionSummary) AnswerRequired() bool {
	if q.Optional() {
		return false
	}
	if q.children != nil {
		for _, child := range q.children {
			if child.AnswerRequired() {
				return true
			}
		}
		return false
	}
	return !q.HasValue(q.data)
}

// Assurance is the resolved assurance text, empty when the answer carries
// none.
func (q *QuestionSummary) Assurance() string {
	return q.AssuranceValue(q.data)
}

// Children returns the child projections of a composite question, nil for a
// leaf.
func (q *QuestionSummary) Children() []*QuestionSummary {
	return q.children
}

// SummarySection fuses a section with typed answer data into a read-only
// projection.
type SummarySection struct {
	section   *Section
	data      map[string]any
	summaries []*QuestionSummary
}

// Summary projects typed answer data onto the section. The section itself is
// not mutated; followup rules are evaluated here, where answers exist, never
// during plain schema filtering.
func (s *Section) Summary(data map[string]any) *SummarySection {
	ss := &SummarySection{section: s, data: data}
	for _, q := range s.questions {
		ss.summaries = append(ss.summaries, newQuestionSummary(q, data))
	}
	return ss
}

func newQuestionSummary(q question.Question, data map[string]any) *QuestionSummary {
	summary := &QuestionSummary{Question: q, data: data}
	if mq, ok := q.(*question.Multiquestion); ok {
		for _, child := range mq.Children() {
			summary.children = append(summary.children, newQuestionSummary(child, data))
		}
	}
	return summary
}

// Section returns the underlying schema section.
func (ss *SummarySection) Section() *Section {
	return ss.section
}

// Questions returns the per-question projections in document order.
func (ss *SummarySection) Questions() []*QuestionSummary {
	return ss.summaries
}

// Question finds a projection by question id, then slug, searching nested
// children too. It returns nil when nothing matches.
func (ss *SummarySection) Question(key string) *QuestionSummary {
	if q := ss.find(func(q *QuestionSummary) bool { return q.ID() == key }); q != nil {
		return q
	}
	return ss.find(func(q *QuestionSummary) bool { return q.Slug() == key })
}

func (ss *SummarySection) find(match func(*QuestionSummary) bool) *QuestionSummary {
	var walk func(qs []*QuestionSummary) *QuestionSummary
	walk = func(qs []*QuestionSummary) *QuestionSummary {
		for _, q := range qs {
			if match(q) {
				return q
			}
			if found := walk(q.children); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(ss.summaries)
}

// RequiredFollowups returns the ids of followup targets triggered by the
// answers in data: for each answered question whose answer matches a trigger
// value in its followup mapping, every listed target that is non-optional and
// unanswered. Under the base required-ness rule these questions are already
// required; the listing lets callers distinguish followup-driven requirements
// from ordinary ones.
func (ss *SummarySection) RequiredFollowups() []string {
	var out []string
	seen := make(map[string]bool)
	for _, q := range leafQuestions(ss.section.questions) {
		followup := q.Followup()
		if len(followup) == 0 || !q.HasValue(ss.data) {
			continue
		}
		for _, trigger := range answerStrings(ss.data[q.ID()]) {
			for _, target := range followup[trigger] {
				tq := ss.Question(target)
				if tq == nil || tq.Optional() || tq.HasValue(ss.data) || seen[tq.ID()] {
					continue
				}
				seen[tq.ID()] = true
				out = append(out, tq.ID())
			}
		}
	}
	return out
}

// answerStrings normalises an answer to the canonical strings used for
// followup trigger matching: booleans become "true"/"false", list answers
// contribute each element.
func answerStrings(value any) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case []string:
		return typed
	case []any:
		var out []string
		for _, v := range typed {
			out = append(out, question.ValueString(v))
		}
		return out
	case map[string]any:
		return answerStrings(typed["value"])
	default:
		return []string{question.ValueString(typed)}
	}
}

// SummaryManifest fuses a whole manifest with typed answer data.
type SummaryManifest struct {
	manifest *Manifest
	sections []*SummarySection
}

// Summary projects typed answer data onto every section of the manifest.
func (m *Manifest) Summary(data map[string]any) *SummaryManifest {
	m.ensureNumbers()
	sm := &SummaryManifest{manifest: m}
	for _, s := range m.sections {
		sm.sections = append(sm.sections, s.Summary(data))
	}
	return sm
}

// Manifest returns the underlying schema manifest.
func (sm *SummaryManifest) Manifest() *Manifest {
	return sm.manifest
}

// Sections returns the per-section projections in document order.
func (sm *SummaryManifest) Sections() []*SummarySection {
	return sm.sections
}

// Question finds a projection across every section, by id then slug.
func (sm *SummaryManifest) Question(key string) *QuestionSummary {
	for _, ss := range sm.sections {
		if q := ss.find(func(q *QuestionSummary) bool { return q.ID() == key }); q != nil {
			return q
		}
	}
	for _, ss := range sm.sections {
		if q := ss.find(func(q *QuestionSummary) bool { return q.Slug() == key }); q != nil {
			return q
		}
	}
	return nil
}

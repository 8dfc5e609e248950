// Package question models the leaf and composite nodes of a questionnaire
// schema: a closed set of typed variants selected by the declared "type" of a
// raw definition mapping. Every variant shares the Question capability
// surface: dependency matching, submitted-form marshalling, field-name
// enumeration and validation-message lookup.
package question

import (
	"fmt"

	"github.com/goliatone/go-content/pkg/template"
)

// DefaultErrorMessage is returned when no validation entry matches an error
// kind.
const DefaultErrorMessage = "There was a problem with the answer to this question."

// Dependency is a single {on, being} inclusion clause. A clause is satisfied
// when the context holds key On and its value is one of Being. A missing key
// fails the clause.
type Dependency struct {
	On    string
	Being []string
}

// Matches reports whether ctx satisfies the clause.
func (d Dependency) Matches(ctx map[string]any) bool {
	value, ok := ctx[d.On]
	if !ok {
		return false
	}
	got := valueString(value)
	for _, want := range d.Being {
		if want == got {
			return true
		}
	}
	return false
}

// Validation is a named error message, optionally scoped to a single
// submission field.
type Validation struct {
	Name    string
	Message string
	Field   string
}

// Question is the capability surface shared by all schema node variants.
type Question interface {
	ID() string
	Slug() string
	Type() string
	Text() string
	Name() string
	Hint() string
	Optional() bool
	AssuranceApproach() string
	Dependencies() []Dependency
	Followup() map[string][]string
	Validations() []Validation
	Number() int
	SetNumber(n int)
	Get(key string) any

	// MatchesContext evaluates the question's own dependency clauses
	// (AND-combined) against ctx.
	MatchesContext(ctx map[string]any) bool

	// Render transitions the question's templated fields to their rendered
	// state using ctx.
	Render(r template.Renderer, ctx map[string]any) error

	// Copy returns a deep copy sharing no mutable state with the receiver.
	Copy() Question

	// FieldNames returns every concrete submission key the question occupies.
	FieldNames() ([]string, error)

	// GetData extracts and converts this question's answer(s) from a raw
	// submission.
	GetData(form Form) (map[string]any, error)

	// UnformatData reconstructs the submission-shaped mapping for this
	// question from typed data. Unknown keys are dropped.
	UnformatData(data map[string]any) map[string]any

	// ErrorMessage resolves an error-kind code against the declared
	// validations, falling back to DefaultErrorMessage.
	ErrorMessage(kind, field string) string

	// HasValue reports whether data holds a non-empty answer for the
	// question.
	HasValue(data map[string]any) bool

	// SummaryValue is the type-formatted display value for the answer held in
	// data.
	SummaryValue(data map[string]any) any

	// AssuranceValue is the resolved assurance text, or the empty string when
	// the answer carries none.
	AssuranceValue(data map[string]any) string
}

// New builds the typed variant matching the declared type of a raw question
// definition. A definition with nested questions and no explicit type is
// treated as a multiquestion; unknown scalar types are passthrough text.
func New(raw map[string]any) (Question, error) {
	c, err := parseCommon(raw)
	if err != nil {
		return nil, err
	}

	switch c.qtype {
	case "multiquestion":
		return newMultiquestion(c, raw)
	case "pricing":
		return newPricing(c, raw), nil
	case "boolean_list":
		return newBooleanList(c, raw), nil
	case "service_id":
		return &ServiceID{common: c}, nil
	default:
		return &Standard{common: c}, nil
	}
}

// NewAll converts a list of raw definitions.
func NewAll(raw []map[string]any) ([]Question, error) {
	out := make([]Question, 0, len(raw))
	for i, entry := range raw {
		q, err := New(entry)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		out = append(out, q)
	}
	return out, nil
}

// Package content models questionnaire schemas: sections of questions, whole
// manifests, dependency filtering, answer summaries and validation-error
// resolution. Schemas are built once from plain nested data, narrowed with
// Filter, and queried through answer-aware projections.
package content

import "fmt"

// QuestionNotFoundError reports an error-map key or lookup that matches no
// question in the schema. This is a configuration bug in the caller, not a
// user-facing condition.
type QuestionNotFoundError struct {
	Key string
}

func (e *QuestionNotFoundError) Error() string {
	return fmt.Sprintf("content: no question matches key %q", e.Key)
}

// NotFoundError reports content that was expected to exist but does not, such
// as a manifest file or a missing item-question entry for a required
// boolean-list question.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content: %s not found", e.What)
}

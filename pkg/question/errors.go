package question

import "fmt"

// ConfigurationError reports a question definition that cannot serve the
// requested operation, such as a pricing question without its sub-field
// mapping.
type ConfigurationError struct {
	Question string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("question %q: %s", e.Question, e.Reason)
}

package question

import (
	"strconv"
	"strings"
)

// BooleanList collects one yes/no answer per item of an externally supplied
// list of item questions. Submissions spread the answers over indexed keys of
// the form "<id>-<n>"; the marshalled answer is a dense list with nil gaps for
// indices never submitted.
type BooleanList struct {
	common
	items []string
}

func newBooleanList(c common, raw map[string]any) *BooleanList {
	q := &BooleanList{common: c}
	if entries, ok := raw["boolean_list_questions"].([]any); ok {
		for _, entry := range entries {
			q.items = append(q.items, stringValue(entry))
		}
	}
	return q
}

// ItemQuestions returns the per-item question texts, nil when none were
// supplied.
func (q *BooleanList) ItemQuestions() []string {
	return q.items
}

// SetItemQuestions supplies the per-item question texts from external content.
func (q *BooleanList) SetItemQuestions(items []string) {
	q.items = append([]string(nil), items...)
}

// Get exposes the item questions under the boolean_list_questions key so
// callers reading raw definition keys observe the injected list.
func (q *BooleanList) Get(key string) any {
	if key == "boolean_list_questions" {
		if q.items == nil {
			return nil
		}
		return q.items
	}
	return q.common.Get(key)
}

func (q *BooleanList) Copy() Question {
	dup := &BooleanList{common: q.copyCommon()}
	dup.items = append([]string(nil), q.items...)
	return dup
}

func (q *BooleanList) FieldNames() ([]string, error) {
	return []string{q.id}, nil
}

func (q *BooleanList) GetData(form Form) (map[string]any, error) {
	byIndex := make(map[int]any)
	max := -1
	for _, entry := range form {
		index, ok := q.itemIndex(entry.Key)
		if !ok {
			continue
		}
		if _, seen := byIndex[index]; seen {
			continue
		}
		byIndex[index] = parseBoolLoose(entry.Value)
		if index > max {
			max = index
		}
	}
	if max < 0 {
		return map[string]any{}, nil
	}

	values := make([]any, max+1)
	for index, value := range byIndex {
		values[index] = value
	}
	return map[string]any{q.id: values}, nil
}

func (q *BooleanList) UnformatData(data map[string]any) map[string]any {
	out := make(map[string]any)
	if value, ok := data[q.id]; ok {
		out[q.id] = value
	}
	return out
}

func (q *BooleanList) HasValue(data map[string]any) bool {
	return hasAnswer(data, q.id)
}

func (q *BooleanList) SummaryValue(data map[string]any) any {
	return displayValue(data, q.id)
}

// itemIndex parses an indexed submission key for this question. Only keys
// whose suffix is entirely digits count; the bare id does not.
func (q *BooleanList) itemIndex(key string) (int, bool) {
	suffix, ok := strings.CutPrefix(key, q.id+"-")
	if !ok || suffix == "" {
		return 0, false
	}
	index, err := strconv.Atoi(suffix)
	if err != nil || index < 0 {
		return 0, false
	}
	// Atoi accepts a leading sign; digits-only keys cannot carry one.
	if suffix[0] < '0' || suffix[0] > '9' {
		return 0, false
	}
	return index, true
}

package question

import (
	"fmt"
	"sort"
	"strings"
)

// Logical pricing sub-fields, in display order.
const (
	PriceMinimum  = "minimum_price"
	PriceMaximum  = "maximum_price"
	PriceUnit     = "price_unit"
	PriceInterval = "price_interval"
)

// Pricing splits a single price answer across several submission fields. The
// definition's fields mapping binds the logical sub-fields to the concrete
// submission keys this question occupies.
type Pricing struct {
	common
	fields         map[string]string
	optionalFields map[string]struct{}
}

func newPricing(c common, raw map[string]any) *Pricing {
	q := &Pricing{common: c}

	if entries, ok := raw["fields"].(map[string]any); ok {
		q.fields = make(map[string]string, len(entries))
		for logical, concrete := range entries {
			q.fields[logical] = stringValue(concrete)
		}
	}
	if entries, ok := raw["optional_fields"].([]any); ok {
		q.optionalFields = make(map[string]struct{}, len(entries))
		for _, entry := range entries {
			q.optionalFields[stringValue(entry)] = struct{}{}
		}
	}
	return q
}

func (q *Pricing) Copy() Question {
	dup := &Pricing{common: q.copyCommon()}
	if q.fields != nil {
		dup.fields = make(map[string]string, len(q.fields))
		for logical, concrete := range q.fields {
			dup.fields[logical] = concrete
		}
	}
	if q.optionalFields != nil {
		dup.optionalFields = make(map[string]struct{}, len(q.optionalFields))
		for logical := range q.optionalFields {
			dup.optionalFields[logical] = struct{}{}
		}
	}
	return dup
}

// FieldNames returns the concrete submission keys, ordered by logical
// sub-field name. A pricing question without a fields mapping cannot be
// submitted against.
func (q *Pricing) FieldNames() ([]string, error) {
	if len(q.fields) == 0 {
		return nil, &ConfigurationError{Question: q.id, Reason: "pricing question has no fields mapping"}
	}
	logical := make([]string, 0, len(q.fields))
	for name := range q.fields {
		logical = append(logical, name)
	}
	sort.Strings(logical)

	out := make([]string, 0, len(logical))
	for _, name := range logical {
		out = append(out, q.fields[name])
	}
	return out, nil
}

func (q *Pricing) GetData(form Form) (map[string]any, error) {
	if len(q.fields) == 0 {
		return nil, &ConfigurationError{Question: q.id, Reason: "pricing question has no fields mapping"}
	}
	out := make(map[string]any)
	for _, concrete := range q.fields {
		value, ok := form.Get(concrete)
		if !ok {
			continue
		}
		if value == "" {
			out[concrete] = nil
		} else {
			out[concrete] = value
		}
	}
	return out, nil
}

func (q *Pricing) UnformatData(data map[string]any) map[string]any {
	out := make(map[string]any)
	for _, concrete := range q.fields {
		if value, ok := data[concrete]; ok {
			out[concrete] = value
		}
	}
	return out
}

// HasValue reports whether every non-optional sub-field holds an answer.
func (q *Pricing) HasValue(data map[string]any) bool {
	if len(q.fields) == 0 {
		return false
	}
	for logical, concrete := range q.fields {
		if _, optional := q.optionalFields[logical]; optional {
			continue
		}
		if !hasAnswer(data, concrete) {
			return false
		}
	}
	return true
}

// SummaryValue formats a complete price answer as a display string, for
// example "£10.50 to £15 a person day". An incomplete answer displays as
// empty.
func (q *Pricing) SummaryValue(data map[string]any) any {
	if !q.HasValue(data) {
		return ""
	}
	price := func(logical string) string {
		return strings.TrimSpace(valueString(data[q.fields[logical]]))
	}

	out := "£" + price(PriceMinimum)
	if max := price(PriceMaximum); max != "" {
		out += " to £" + max
	}
	if unit := price(PriceUnit); unit != "" {
		out += " a " + strings.ToLower(unit)
	}
	if interval := price(PriceInterval); interval != "" {
		out += " " + strings.ToLower(interval)
	}
	return out
}

// SubField returns the concrete submission key bound to a logical pricing
// sub-field, or an error when the definition does not declare it.
func (q *Pricing) SubField(logical string) (string, error) {
	concrete, ok := q.fields[logical]
	if !ok {
		return "", fmt.Errorf("question %q: no %s field declared", q.id, logical)
	}
	return concrete, nil
}

package question

import "strconv"

// Standard covers every scalar and flat-list question type: text, radios,
// textbox_large, upload, boolean, number, list, checkboxes, and any unknown
// type, which is treated as passthrough text. A standard question with an
// assurance approach marshals into a {value, assurance} composite.
type Standard struct {
	common
}

func (q *Standard) Copy() Question {
	return &Standard{common: q.copyCommon()}
}

func (q *Standard) FieldNames() ([]string, error) {
	return []string{q.id}, nil
}

func (q *Standard) GetData(form Form) (map[string]any, error) {
	out := make(map[string]any)

	if q.assurance != "" {
		composite := make(map[string]any)
		if value, ok := form.Get(q.id); ok && value != "" {
			composite["value"] = q.convertScalar(value)
		}
		if assurance, ok := form.Get(q.id + "--assurance"); ok && assurance != "" {
			composite["assurance"] = assurance
		}
		if len(composite) > 0 {
			out[q.id] = composite
		}
		return out, nil
	}

	switch q.qtype {
	case "boolean":
		if value, ok := form.Get(q.id); ok {
			out[q.id] = parseBoolLoose(value)
		}
	case "list", "checkboxes":
		values := form.All(q.id)
		if len(values) == 0 {
			out[q.id] = nil
		} else {
			out[q.id] = append([]string(nil), values...)
		}
	case "number":
		if value, ok := form.Get(q.id); ok {
			if value == "" {
				out[q.id] = nil
			} else {
				out[q.id] = parseNumber(value)
			}
		}
	default:
		if value, ok := form.Get(q.id); ok {
			if value == "" {
				out[q.id] = nil
			} else {
				out[q.id] = value
			}
		}
	}

	return out, nil
}

func (q *Standard) UnformatData(data map[string]any) map[string]any {
	out := make(map[string]any)

	if q.assurance != "" {
		if composite, ok := data[q.id].(map[string]any); ok {
			if value, ok := composite["value"]; ok {
				out[q.id] = value
			}
			if assurance, ok := composite["assurance"]; ok {
				out[q.id+"--assurance"] = assurance
			}
			return out
		}
	}

	if value, ok := data[q.id]; ok {
		out[q.id] = value
	}
	return out
}

func (q *Standard) HasValue(data map[string]any) bool {
	return hasAnswer(data, q.id)
}

func (q *Standard) SummaryValue(data map[string]any) any {
	return displayValue(data, q.id)
}

func (q *Standard) convertScalar(value string) any {
	switch q.qtype {
	case "boolean":
		return parseBoolLoose(value)
	case "number":
		return parseNumber(value)
	default:
		return value
	}
}

// parseBoolLoose converts the canonical form encodings of booleans; anything
// else passes through as the raw string.
func parseBoolLoose(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	default:
		return value
	}
}

// parseNumber prefers integers, falls back to floats, and passes unparseable
// input through unchanged.
func parseNumber(value string) any {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

// hasAnswer reports whether data holds a non-empty answer under key.
func hasAnswer(data map[string]any, key string) bool {
	value, ok := data[key]
	if !ok || value == nil {
		return false
	}
	switch typed := value.(type) {
	case string:
		return typed != ""
	case []string:
		return len(typed) > 0
	case []any:
		return len(typed) > 0
	case map[string]any:
		_, ok := typed["value"]
		return ok
	default:
		return true
	}
}

// displayValue resolves the renderable answer under key: composite answers
// yield their inner value, missing answers yield the empty string.
func displayValue(data map[string]any, key string) any {
	value, ok := data[key]
	if !ok || value == nil {
		return ""
	}
	if composite, ok := value.(map[string]any); ok {
		if inner, ok := composite["value"]; ok {
			return inner
		}
		return ""
	}
	return value
}

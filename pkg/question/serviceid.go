package question

// ServiceID references an existing service by identifier. The answer always
// marshals as a {value, assurance} composite regardless of whether the
// definition declares an assurance approach.
type ServiceID struct {
	common
}

func (q *ServiceID) Copy() Question {
	return &ServiceID{common: q.copyCommon()}
}

func (q *ServiceID) FieldNames() ([]string, error) {
	return []string{q.id}, nil
}

func (q *ServiceID) GetData(form Form) (map[string]any, error) {
	composite := make(map[string]any)
	if value, ok := form.Get(q.id); ok && value != "" {
		composite["value"] = value
	}
	if assurance, ok := form.Get(q.id + "--assurance"); ok && assurance != "" {
		composite["assurance"] = assurance
	}
	if len(composite) == 0 {
		return map[string]any{}, nil
	}
	return map[string]any{q.id: composite}, nil
}

func (q *ServiceID) UnformatData(data map[string]any) map[string]any {
	out := make(map[string]any)
	if composite, ok := data[q.id].(map[string]any); ok {
		if value, ok := composite["value"]; ok {
			out[q.id] = value
		}
		if assurance, ok := composite["assurance"]; ok {
			out[q.id+"--assurance"] = assurance
		}
		return out
	}
	if value, ok := data[q.id]; ok {
		out[q.id] = value
	}
	return out
}

func (q *ServiceID) HasValue(data map[string]any) bool {
	return hasAnswer(data, q.id)
}

func (q *ServiceID) SummaryValue(data map[string]any) any {
	return displayValue(data, q.id)
}

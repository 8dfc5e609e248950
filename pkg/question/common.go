package question

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-content/pkg/template"
)

// keys recognised by parseCommon and the variant constructors; everything
// else lands in the extra mapping.
var recognisedKeys = map[string]struct{}{
	"id": {}, "slug": {}, "type": {}, "question": {}, "name": {},
	"hint": {}, "question_advice": {}, "optional": {},
	"assuranceApproach": {}, "depends": {}, "followup": {},
	"validations": {}, "fields": {}, "optional_fields": {}, "questions": {},
}

type common struct {
	id        string
	slug      string
	qtype     string
	text      template.Field
	name      template.Field
	hint      template.Field
	advice    template.Field
	optional  bool
	assurance string
	number    int

	depends     []Dependency
	followup    map[string][]string
	validations []Validation
	extra       map[string]any
}

func parseCommon(raw map[string]any) (common, error) {
	c := common{}

	c.id = stringValue(raw["id"])
	if c.id == "" {
		c.id = fieldText(raw["name"])
	}
	c.qtype = stringValue(raw["type"])
	if c.qtype == "" {
		if _, ok := raw["questions"]; ok {
			c.qtype = "multiquestion"
		}
	}
	c.slug = stringValue(raw["slug"])
	if c.slug == "" {
		c.slug = MakeSlug(c.id)
	}

	c.text = asField(raw["question"], false)
	c.name = asField(raw["name"], false)
	c.hint = asField(raw["hint"], false)
	c.advice = asField(raw["question_advice"], true)

	c.optional, _ = raw["optional"].(bool)
	c.assurance = stringValue(raw["assuranceApproach"])

	depends, err := parseDependencies(raw["depends"])
	if err != nil {
		return common{}, err
	}
	c.depends = depends
	c.followup = parseFollowup(raw["followup"])
	c.validations = parseValidations(raw["validations"])

	for key, value := range raw {
		if _, known := recognisedKeys[key]; known {
			continue
		}
		if c.extra == nil {
			c.extra = make(map[string]any)
		}
		c.extra[key] = value
	}

	return c, nil
}

func (c *common) ID() string                  { return c.id }
func (c *common) Slug() string                { return c.slug }
func (c *common) Type() string                { return c.qtype }
func (c *common) Text() string                { return fieldString(c.text) }
func (c *common) Name() string                { return fieldString(c.name) }
func (c *common) Hint() string                { return fieldString(c.hint) }
func (c *common) Optional() bool              { return c.optional }
func (c *common) AssuranceApproach() string   { return c.assurance }
func (c *common) Dependencies() []Dependency  { return c.depends }
func (c *common) Followup() map[string][]string { return c.followup }
func (c *common) Validations() []Validation   { return c.validations }
func (c *common) Number() int                 { return c.number }
func (c *common) SetNumber(n int)             { c.number = n }

func (c *common) Get(key string) any {
	return c.extra[key]
}

func (c *common) MatchesContext(ctx map[string]any) bool {
	for _, clause := range c.depends {
		if !clause.Matches(ctx) {
			return false
		}
	}
	return true
}

func (c *common) Render(r template.Renderer, ctx map[string]any) error {
	for _, field := range []*template.Field{&c.text, &c.name, &c.hint, &c.advice} {
		rendered, err := field.Render(r, ctx)
		if err != nil {
			return fmt.Errorf("question %q: %w", c.id, err)
		}
		*field = rendered
	}
	return nil
}

func (c *common) ErrorMessage(kind, field string) string {
	for _, v := range c.validations {
		if v.Name != kind {
			continue
		}
		if v.Field != "" && v.Field != field {
			continue
		}
		return v.Message
	}
	return DefaultErrorMessage
}

// AssuranceValue resolves the assurance text from a composite answer mapping.
func (c *common) AssuranceValue(data map[string]any) string {
	if m, ok := data[c.id].(map[string]any); ok {
		return stringValue(m["assurance"])
	}
	return ""
}

func (c *common) copyCommon() common {
	dup := *c
	dup.depends = append([]Dependency(nil), c.depends...)
	for i, d := range dup.depends {
		dup.depends[i].Being = append([]string(nil), d.Being...)
	}
	dup.validations = append([]Validation(nil), c.validations...)
	if c.followup != nil {
		dup.followup = make(map[string][]string, len(c.followup))
		for key, ids := range c.followup {
			dup.followup[key] = append([]string(nil), ids...)
		}
	}
	if c.extra != nil {
		dup.extra = make(map[string]any, len(c.extra))
		for key, value := range c.extra {
			dup.extra[key] = value
		}
	}
	return dup
}

func parseDependencies(raw any) ([]Dependency, error) {
	entries, ok := raw.([]any)
	if !ok {
		if raw == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("question: depends must be a list, got %T", raw)
	}

	out := make([]Dependency, 0, len(entries))
	for _, entry := range entries {
		clause, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("question: depends clause must be a mapping, got %T", entry)
		}
		dep := Dependency{On: stringValue(clause["on"])}
		switch being := clause["being"].(type) {
		case []any:
			for _, b := range being {
				dep.Being = append(dep.Being, valueString(b))
			}
		case []string:
			dep.Being = append(dep.Being, being...)
		case nil:
		default:
			dep.Being = []string{valueString(being)}
		}
		out = append(out, dep)
	}
	return out, nil
}

func parseFollowup(raw any) map[string][]string {
	entries, ok := raw.(map[string]any)
	if !ok {
		// YAML decodes boolean keys as bool; normalise through valueString.
		if typed, ok := raw.(map[any]any); ok {
			entries = make(map[string]any, len(typed))
			for key, value := range typed {
				entries[valueString(key)] = value
			}
		} else {
			return nil
		}
	}

	out := make(map[string][]string, len(entries))
	for key, value := range entries {
		trigger := valueString(key)
		switch ids := value.(type) {
		case []any:
			for _, id := range ids {
				out[trigger] = append(out[trigger], stringValue(id))
			}
		case []string:
			out[trigger] = append(out[trigger], ids...)
		default:
			out[trigger] = append(out[trigger], stringValue(ids))
		}
	}
	return out
}

func parseValidations(raw any) []Validation {
	entries, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]Validation, 0, len(entries))
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Validation{
			Name:    stringValue(m["name"]),
			Message: fieldText(m["message"]),
			Field:   stringValue(m["field"]),
		})
	}
	return out
}

func asField(v any, markdown bool) template.Field {
	switch typed := v.(type) {
	case template.Field:
		return typed
	case string:
		if markdown {
			return template.NewMarkdown(typed)
		}
		return template.New(typed)
	default:
		return template.Field{}
	}
}

// fieldString returns the rendered value of a field when available, otherwise
// its raw text.
func fieldString(f template.Field) string {
	if value, err := f.Value(); err == nil {
		return value
	}
	return f.Raw()
}

func fieldText(v any) string {
	switch typed := v.(type) {
	case template.Field:
		return fieldString(typed)
	case string:
		return typed
	default:
		return ""
	}
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// ValueString normalises scalar answer and schema values to their canonical
// string form for dependency and followup matching: booleans become
// "true"/"false", nil the empty string.
func ValueString(v any) string {
	return valueString(v)
}

func valueString(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(typed))
	}
}

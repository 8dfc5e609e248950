// Package openapi imports questionnaire schemas from OpenAPI 3 documents:
// every operation with a request body becomes a section definition whose
// questions mirror the body's properties. The resulting raw definitions feed
// straight into content.NewSection / content.NewManifest.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-content/pkg/question"
)

// Option configures an Importer.
type Option func(*config)

type config struct {
	resolveReferences bool
}

// WithReferenceResolution validates the document and follows $ref targets
// while loading.
func WithReferenceResolution() Option {
	return func(cfg *config) {
		cfg.resolveReferences = true
	}
}

// Importer converts OpenAPI documents into raw section definitions.
type Importer struct {
	options config
}

// New constructs an Importer with the given options.
func New(options ...Option) *Importer {
	imp := &Importer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&imp.options)
	}
	return imp
}

// Sections extracts one section definition per operation carrying a request
// body, ordered by operation id. The section slug comes from the operation
// id, its name from the summary.
func (imp *Importer) Sections(ctx context.Context, raw []byte) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: imp.options.resolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if imp.options.resolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	var sections []map[string]any
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range map[string]*openapi3.Operation{
			"POST":  item.Post,
			"PUT":   item.Put,
			"PATCH": item.Patch,
		} {
			section := imp.section(method, path, operation)
			if section != nil {
				sections = append(sections, section)
			}
		}
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i]["slug"].(string) < sections[j]["slug"].(string)
	})
	return sections, nil
}

func (imp *Importer) section(method, path string, operation *openapi3.Operation) map[string]any {
	if operation == nil {
		return nil
	}
	body := requestSchema(operation.RequestBody)
	if body == nil || body.Value == nil || len(body.Value.Properties) == 0 {
		return nil
	}

	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}
	name := operation.Summary
	if name == "" {
		name = opID
	}

	return map[string]any{
		"slug":      question.MakeSlug(opID),
		"name":      name,
		"editable":  true,
		"questions": propertyQuestions(body.Value),
	}
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.SchemaRef {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok {
			return mt.Schema
		}
	}
	for _, mt := range content {
		return mt.Schema
	}
	return nil
}

// propertyQuestions converts an object schema's properties into raw question
// definitions, in name order. The required list drives the optional flag.
func propertyQuestions(schema *openapi3.Schema) []any {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]any, 0, len(names))
	for _, name := range names {
		property := schema.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		out = append(out, propertyQuestion(name, property.Value, required[name]))
	}
	return out
}

func propertyQuestion(name string, schema *openapi3.Schema, required bool) map[string]any {
	def := map[string]any{
		"id":       name,
		"question": questionText(name, schema),
	}
	if !required {
		def["optional"] = true
	}
	if schema.Description != "" {
		def["hint"] = schema.Description
	}

	switch firstSchemaType(schema.Type) {
	case "boolean":
		def["type"] = "boolean"
	case "number", "integer":
		def["type"] = "number"
	case "array":
		def["type"] = "list"
		if items := schema.Items; items != nil && items.Value != nil && len(items.Value.Enum) > 0 {
			def["type"] = "checkboxes"
			def["options"] = enumOptions(items.Value.Enum)
		}
	case "object":
		delete(def, "type")
		def["questions"] = propertyQuestions(schema)
	default:
		def["type"] = "text"
		if len(schema.Enum) > 0 {
			def["type"] = "radios"
			def["options"] = enumOptions(schema.Enum)
		}
	}
	return def
}

// questionText prefers the schema title, falling back to the property name.
func questionText(name string, schema *openapi3.Schema) string {
	if schema.Title != "" {
		return schema.Title
	}
	return name
}

func enumOptions(enum []any) []any {
	out := make([]any, 0, len(enum))
	for _, value := range enum {
		out = append(out, map[string]any{
			"label": fmt.Sprint(value),
			"value": fmt.Sprint(value),
		})
	}
	return out
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

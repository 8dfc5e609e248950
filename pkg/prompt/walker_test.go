package prompt_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-content/pkg/content"
	"github.com/goliatone/go-content/pkg/prompt"
	"github.com/goliatone/go-content/pkg/question"
)

// scriptedDriver replays canned answers per prompt kind and records the
// messages it was asked, so walks can be asserted without a terminal.
type scriptedDriver struct {
	inputs   []string
	confirms []bool
	selects  []int
	multis   [][]int
	areas    []string

	messages []string
	err      error
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.messages = append(d.messages, cfg.Message)
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	d.messages = append(d.messages, cfg.Message)
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	d.messages = append(d.messages, cfg.Message)
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *scriptedDriver) MultiSelect(_ context.Context, cfg prompt.SelectConfig) ([]int, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.messages = append(d.messages, cfg.Message)
	out := d.multis[0]
	d.multis = d.multis[1:]
	return out, nil
}

func (d *scriptedDriver) TextArea(_ context.Context, cfg prompt.TextAreaConfig) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.messages = append(d.messages, cfg.Message)
	out := d.areas[0]
	d.areas = d.areas[1:]
	return out, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	if d.err != nil {
		return d.err
	}
	d.messages = append(d.messages, msg)
	return nil
}

func walkSection(t *testing.T, raw map[string]any) *content.Section {
	t.Helper()
	s, err := content.NewSection(raw)
	if err != nil {
		t.Fatalf("NewSection() error: %v", err)
	}
	filtered, err := s.Filter(nil)
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	return filtered
}

func TestWalkSection(t *testing.T) {
	s := walkSection(t, map[string]any{
		"name": "About the service",
		"questions": []any{
			map[string]any{"id": "serviceName", "question": "Service name", "type": "text"},
			map[string]any{"id": "termination", "question": "Can users terminate?", "type": "boolean"},
			map[string]any{
				"id":       "lot",
				"question": "Which lot?",
				"type":     "radios",
				"options": []any{
					map[string]any{"label": "Software as a Service", "value": "SaaS"},
					map[string]any{"label": "Platform as a Service", "value": "PaaS"},
				},
			},
			map[string]any{
				"id":       "categories",
				"question": "Pick categories",
				"type":     "checkboxes",
				"options":  []any{"accounting", "compliance", "monitoring"},
			},
			map[string]any{"id": "features", "question": "List the features", "type": "list"},
		},
	})

	driver := &scriptedDriver{
		inputs:   []string{"Cloud thing", "feature one", "feature two", ""},
		confirms: []bool{true},
		selects:  []int{1},
		multis:   [][]int{{0, 2}},
	}
	walker := prompt.NewWalker(prompt.WithDriver(driver))

	form, err := walker.WalkSection(context.Background(), s)
	if err != nil {
		t.Fatalf("WalkSection() error: %v", err)
	}

	want := question.NewForm(
		question.Entry{Key: "serviceName", Value: "Cloud thing"},
		question.Entry{Key: "termination", Value: "true"},
		question.Entry{Key: "lot", Value: "PaaS"},
		question.Entry{Key: "categories", Value: "accounting"},
		question.Entry{Key: "categories", Value: "monitoring"},
		question.Entry{Key: "features", Value: "feature one"},
		question.Entry{Key: "features", Value: "feature two"},
	)
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}

	if driver.messages[0] != "== About the service" {
		t.Fatalf("first message = %q, want section banner", driver.messages[0])
	}
}

func TestWalkCompositeAndIndexedQuestions(t *testing.T) {
	s := walkSection(t, map[string]any{
		"name": "Details",
		"questions": []any{
			map[string]any{
				"id":       "pricingGroup",
				"question": "Pricing",
				"questions": []any{
					map[string]any{
						"id":       "priceString",
						"question": "How much?",
						"type":     "pricing",
						"fields": map[string]any{
							"minimum_price": "priceMin",
							"price_unit":    "priceUnit",
						},
					},
				},
			},
			map[string]any{
				"id":                     "accreditations",
				"question":               "Which apply?",
				"type":                   "boolean_list",
				"boolean_list_questions": []any{"ISO 27001?", "PCI compliant?"},
			},
		},
	})

	driver := &scriptedDriver{
		inputs:   []string{"10", "unit"},
		confirms: []bool{true, false},
	}
	walker := prompt.NewWalker(prompt.WithDriver(driver))

	form, err := walker.WalkSection(context.Background(), s)
	if err != nil {
		t.Fatalf("WalkSection() error: %v", err)
	}

	want := question.NewForm(
		question.Entry{Key: "priceMin", Value: "10"},
		question.Entry{Key: "priceUnit", Value: "unit"},
		question.Entry{Key: "accreditations-0", Value: "true"},
		question.Entry{Key: "accreditations-1", Value: "false"},
	)
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkAssuranceQuestion(t *testing.T) {
	s := walkSection(t, map[string]any{
		"name": "Assured answers",
		"questions": []any{
			map[string]any{
				"id":                "dataProtection",
				"question":          "How is data protected?",
				"type":              "text",
				"assuranceApproach": "2answers-type1",
			},
		},
	})

	driver := &scriptedDriver{inputs: []string{"Encrypted at rest", "Independently audited"}}
	walker := prompt.NewWalker(prompt.WithDriver(driver))

	form, err := walker.WalkSection(context.Background(), s)
	if err != nil {
		t.Fatalf("WalkSection() error: %v", err)
	}

	want := question.NewForm(
		question.Entry{Key: "dataProtection", Value: "Encrypted at rest"},
		question.Entry{Key: "dataProtection--assurance", Value: "Independently audited"},
	)
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkUnfilteredSectionFails(t *testing.T) {
	s, err := content.NewSection(map[string]any{
		"name":      "Raw",
		"questions": []any{map[string]any{"id": "q1", "question": "One", "type": "text"}},
	})
	if err != nil {
		t.Fatalf("NewSection() error: %v", err)
	}

	walker := prompt.NewWalker(prompt.WithDriver(&scriptedDriver{}))
	if _, err := walker.WalkSection(context.Background(), s); err == nil {
		t.Fatal("walking an unfiltered section should fail")
	}
}

func TestWalkPropagatesAbort(t *testing.T) {
	s := walkSection(t, map[string]any{
		"name":      "Aborted",
		"questions": []any{map[string]any{"id": "q1", "question": "One", "type": "text"}},
	})

	walker := prompt.NewWalker(prompt.WithDriver(&scriptedDriver{err: prompt.ErrAborted}))
	if _, err := walker.WalkSection(context.Background(), s); err != prompt.ErrAborted {
		t.Fatalf("error = %v, want ErrAborted", err)
	}
}

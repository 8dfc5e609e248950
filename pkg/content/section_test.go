package content_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-content/pkg/content"
	"github.com/goliatone/go-content/pkg/question"
	"github.com/goliatone/go-content/pkg/template"
)

func TestHasSummaryPage(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want bool
	}{
		{
			"single question no description",
			map[string]any{
				"slug": "s", "name": "S",
				"questions": []any{map[string]any{"id": "q1", "type": "text"}},
			},
			false,
		},
		{
			"multiple questions",
			map[string]any{
				"slug": "s", "name": "S",
				"questions": []any{
					map[string]any{"id": "q1", "type": "text"},
					map[string]any{"id": "q2", "type": "text"},
				},
			},
			true,
		},
		{
			"description set",
			map[string]any{
				"slug": "s", "name": "S", "description": "About this section",
				"questions": []any{map[string]any{"id": "q1", "type": "text"}},
			},
			true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustSection(t, tc.raw).HasSummaryPage(); got != tc.want {
				t.Fatalf("HasSummaryPage() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTemplatedAttributesGatedUntilFiltered(t *testing.T) {
	s := mustSection(t, map[string]any{
		"slug":        "gated-section",
		"name":        "Plain name",
		"description": "Plain description",
		"questions":   []any{map[string]any{"id": "q1", "type": "text"}},
	})

	if _, err := s.Name(); !errors.Is(err, template.ErrNotRendered) {
		t.Fatalf("Name() before filter error = %v, want ErrNotRendered", err)
	}
	if _, err := s.Description(); !errors.Is(err, template.ErrNotRendered) {
		t.Fatalf("Description() before filter error = %v, want ErrNotRendered", err)
	}
	if s.Slug() != "gated-section" {
		t.Fatal("slug must be readable before filtering")
	}

	filtered, err := s.Filter(map[string]any{})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	name, err := filtered.Name()
	if err != nil {
		t.Fatalf("Name() after filter error: %v", err)
	}
	if name != "Plain name" {
		t.Fatalf("Name() = %q", name)
	}
}

func TestSectionSlugDefaultsFromName(t *testing.T) {
	s := mustSection(t, map[string]any{
		"name":      "My Section Name",
		"questions": []any{},
	})
	if s.Slug() != "my-section-name" {
		t.Fatalf("Slug() = %q", s.Slug())
	}
}

func TestQuestionNavigationWithinSection(t *testing.T) {
	s := mustSection(t, map[string]any{
		"slug": "nav-section",
		"name": "Nav section",
		"questions": []any{
			map[string]any{"id": "q1", "slug": "first", "type": "text"},
			map[string]any{"id": "q2", "slug": "second", "type": "text"},
			map[string]any{"id": "q3", "slug": "third", "type": "text"},
		},
	})

	if got := s.NextQuestionID(""); got != "q1" {
		t.Fatalf("NextQuestionID(\"\") = %q", got)
	}
	if got := s.NextQuestionID("q1"); got != "q2" {
		t.Fatalf("NextQuestionID(q1) = %q", got)
	}
	if got := s.NextQuestionID("q3"); got != "" {
		t.Fatalf("NextQuestionID(q3) = %q, want empty", got)
	}
	if got := s.PreviousQuestionID("q2"); got != "q1" {
		t.Fatalf("PreviousQuestionID(q2) = %q", got)
	}
	if got := s.PreviousQuestionID("q1"); got != "" {
		t.Fatalf("PreviousQuestionID(q1) = %q, want empty", got)
	}
	if got := s.NextQuestionSlug("first"); got != "second" {
		t.Fatalf("NextQuestionSlug(first) = %q", got)
	}
	if got := s.PreviousQuestionSlug("third"); got != "second" {
		t.Fatalf("PreviousQuestionSlug(third) = %q", got)
	}
	if got := s.NextQuestionID("unknown"); got != "" {
		t.Fatalf("NextQuestionID(unknown) = %q, want empty", got)
	}
}

func TestQuestionIDs(t *testing.T) {
	s := mustSection(t, map[string]any{
		"slug": "ids-section",
		"name": "IDs section",
		"questions": []any{
			map[string]any{
				"id": "parent",
				"questions": []any{
					map[string]any{"id": "child1", "type": "text"},
					map[string]any{"id": "child2", "type": "boolean"},
				},
			},
			map[string]any{"id": "q2", "type": "boolean"},
		},
	})

	if diff := cmp.Diff([]string{"child1", "child2", "q2"}, s.QuestionIDs("")); diff != "" {
		t.Fatalf("QuestionIDs(\"\") mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"child2", "q2"}, s.QuestionIDs("boolean")); diff != "" {
		t.Fatalf("QuestionIDs(boolean) mismatch (-want +got):\n%s", diff)
	}
}

func TestQuestionAsSection(t *testing.T) {
	s := mustSection(t, map[string]any{
		"slug":           "parent-section",
		"name":           "Parent section",
		"edit_questions": true,
		"questions": []any{
			map[string]any{
				"id":       "group",
				"slug":     "the-group",
				"question": "Group title",
				"hint":     "Group hint",
				"questions": []any{
					map[string]any{"id": "child1", "type": "text"},
					map[string]any{"id": "child2", "type": "text"},
				},
			},
		},
	})

	filtered, err := s.Filter(map[string]any{})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}

	promoted := filtered.QuestionAsSection("the-group")
	if promoted == nil {
		t.Fatal("QuestionAsSection(the-group) = nil")
	}
	name, err := promoted.Name()
	if err != nil {
		t.Fatalf("Name() error: %v", err)
	}
	if name != "Group title" {
		t.Fatalf("Name() = %q", name)
	}
	description, err := promoted.Description()
	if err != nil {
		t.Fatalf("Description() error: %v", err)
	}
	if description != "Group hint" {
		t.Fatalf("Description() = %q", description)
	}
	if !promoted.Editable() {
		t.Fatal("promoted section inherits editability from edit_questions")
	}
	if promoted.EditQuestions() {
		t.Fatal("promoted section never has edit_questions")
	}
	if diff := cmp.Diff([]string{"child1", "child2"}, promoted.QuestionIDs("")); diff != "" {
		t.Fatalf("questions mismatch (-want +got):\n%s", diff)
	}

	if filtered.QuestionAsSection("no-such-slug") != nil {
		t.Fatal("unknown slug should yield nil")
	}
}

func TestHasChangesToSave(t *testing.T) {
	s := mustSection(t, map[string]any{
		"slug": "second-section",
		"name": "Second section",
		"questions": []any{
			map[string]any{"id": "q2", "type": "text"},
		},
	})

	tests := []struct {
		name     string
		existing map[string]any
		update   map[string]any
		want     bool
	}{
		{"no changes", map[string]any{"q2": "foo"}, map[string]any{"q2": "foo"}, false},
		{"field different", map[string]any{"q2": "foo"}, map[string]any{"q2": "blah"}, true},
		{"field not set on existing", map[string]any{}, map[string]any{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.HasChangesToSave(tc.existing, tc.update)
			if err != nil {
				t.Fatalf("HasChangesToSave() error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("HasChangesToSave() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSectionCopy(t *testing.T) {
	s := mustSection(t, map[string]any{
		"slug":    "copy-section",
		"name":    "Copy section",
		"prefill": true,
		"step":    3,
		"questions": []any{
			map[string]any{"id": "q1", "type": "text"},
		},
	})

	dup := s.Copy()
	dup.Questions()[0].SetNumber(42)
	if s.Questions()[0].Number() == 42 {
		t.Fatal("Copy() shares question state with the original")
	}
	if prefill, ok := dup.Prefill(); !ok || !prefill {
		t.Fatal("Copy() lost the prefill flag")
	}
	if dup.Step() != 3 {
		t.Fatalf("Copy() step = %d, want 3", dup.Step())
	}
}

// allTypesSection covers every question variant a submission can carry.
func allTypesSection(t *testing.T) *content.Section {
	t.Helper()
	return mustSection(t, map[string]any{
		"slug": "first-section",
		"name": "First section",
		"questions": []any{
			map[string]any{
				"id": "q0",
				"questions": []any{
					map[string]any{"id": "q01", "type": "text"},
					map[string]any{"id": "q02", "type": "radios"},
				},
			},
			map[string]any{"id": "q1", "question": "Boolean question", "type": "boolean"},
			map[string]any{"id": "q2", "question": "Text question", "type": "text"},
			map[string]any{"id": "q3", "question": "Radios question", "type": "radios"},
			map[string]any{"id": "q4", "question": "List question", "type": "list"},
			map[string]any{"id": "q5", "question": "Boolean list question", "type": "boolean_list"},
			map[string]any{"id": "q6", "question": "Checkboxes question", "type": "checkboxes"},
			map[string]any{
				"id": "q7", "question": "Service ID question", "type": "service_id",
				"assuranceApproach": "2answers-type1",
			},
			map[string]any{
				"id": "q8", "question": "Pricing question", "type": "pricing",
				"fields": map[string]any{
					"minimum_price":  "q8-min",
					"maximum_price":  "q8-max",
					"price_unit":     "q8-unit",
					"price_interval": "q8-interval",
				},
			},
			map[string]any{"id": "q9", "question": "Upload question", "type": "upload"},
			map[string]any{"id": "q10", "question": "Number question", "type": "number"},
			map[string]any{"id": "q11", "question": "Large text question", "type": "textbox_large"},
			map[string]any{"id": "q12", "question": "Text question", "type": "text"},
		},
	})
}

func TestUnformatData(t *testing.T) {
	s := allTypesSection(t)

	data := map[string]any{
		"q01":         "q01 value",
		"q1":          true,
		"q2":          "Some text stuff",
		"q3":          "value",
		"q4":          []any{"value 1", "value 2"},
		"q5":          []any{true, false},
		"q6":          []any{"check 1", "check 2"},
		"q7":          map[string]any{"assurance": "yes I am", "value": "71234567890"},
		"q8-min":      "12.12",
		"q8-max":      "13.13",
		"q8-unit":     "Unit",
		"q8-interval": "Hour",
		"q10":         12.12,
		"q11":         "Looooooooaaaaaaaaads of text",
		"extraField":  "Should be lost",
	}

	want := map[string]any{
		"q01":           "q01 value",
		"q1":            true,
		"q2":            "Some text stuff",
		"q3":            "value",
		"q4":            []any{"value 1", "value 2"},
		"q5":            []any{true, false},
		"q6":            []any{"check 1", "check 2"},
		"q7":            "71234567890",
		"q7--assurance": "yes I am",
		"q8-min":        "12.12",
		"q8-max":        "13.13",
		"q8-unit":       "Unit",
		"q8-interval":   "Hour",
		"q10":           12.12,
		"q11":           "Looooooooaaaaaaaaads of text",
	}
	if diff := cmp.Diff(want, s.UnformatData(data)); diff != "" {
		t.Fatalf("UnformatData() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetDataThenUnformatData(t *testing.T) {
	s := allTypesSection(t)

	form := question.NewForm(
		question.Entry{Key: "q1", Value: "true"},
		question.Entry{Key: "q01", Value: "some nested question"},
		question.Entry{Key: "q2", Value: "Some text stuff"},
		question.Entry{Key: "q3", Value: "value"},
		question.Entry{Key: "q3", Value: "Should be lost"},
		question.Entry{Key: "q4", Value: "value 1"},
		question.Entry{Key: "q4", Value: "value 2"},
		question.Entry{Key: "q5-0", Value: "true"},
		question.Entry{Key: "q5-1", Value: "false"},
		question.Entry{Key: "q5-4", Value: "true"},
		question.Entry{Key: "q6", Value: "check 1"},
		question.Entry{Key: "q6", Value: "check 2"},
		question.Entry{Key: "q7", Value: "71234567890"},
		question.Entry{Key: "q7--assurance", Value: "yes I am"},
		question.Entry{Key: "q8-min", Value: "12.12"},
		question.Entry{Key: "q8-unit", Value: "Unit"},
		question.Entry{Key: "q8-interval", Value: "Hour"},
		question.Entry{Key: "q10", Value: "12.12"},
		question.Entry{Key: "q11", Value: "Loads of text"},
		question.Entry{Key: "extra_field", Value: "Should be lost"},
		question.Entry{Key: "q12", Value: ""},
	)

	data, err := s.GetData(form)
	if err != nil {
		t.Fatalf("GetData() error: %v", err)
	}

	want := map[string]any{
		"q01":         "some nested question",
		"q1":          true,
		"q2":          "Some text stuff",
		"q3":          "value",
		"q4":          []string{"value 1", "value 2"},
		"q5":          []any{true, false, nil, nil, true},
		"q6":          []string{"check 1", "check 2"},
		"q7":          map[string]any{"assurance": "yes I am", "value": "71234567890"},
		"q8-min":      "12.12",
		"q8-unit":     "Unit",
		"q8-interval": "Hour",
		"q10":         12.12,
		"q11":         "Loads of text",
		"q12":         nil,
	}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Fatalf("GetData() mismatch (-want +got):\n%s", diff)
	}

	wantForm := map[string]any{
		"q01":           "some nested question",
		"q1":            true,
		"q2":            "Some text stuff",
		"q3":            "value",
		"q4":            []string{"value 1", "value 2"},
		"q5":            []any{true, false, nil, nil, true},
		"q6":            []string{"check 1", "check 2"},
		"q7":            "71234567890",
		"q7--assurance": "yes I am",
		"q8-min":        "12.12",
		"q8-unit":       "Unit",
		"q8-interval":   "Hour",
		"q10":           12.12,
		"q11":           "Loads of text",
		"q12":           nil,
	}
	if diff := cmp.Diff(wantForm, s.UnformatData(data)); diff != "" {
		t.Fatalf("UnformatData() mismatch (-want +got):\n%s", diff)
	}
}

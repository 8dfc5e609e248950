package content_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-content/pkg/content"
)

func summaryManifest(t *testing.T) *content.Manifest {
	t.Helper()
	return mustManifest(t, []map[string]any{{
		"slug": "first-section",
		"name": "First section",
		"questions": []any{
			map[string]any{
				"id":       "q1",
				"question": "First question",
				"type":     "multiquestion",
				"questions": []any{
					map[string]any{"id": "q2", "type": "text"},
					map[string]any{"id": "q3", "type": "text"},
				},
			},
			map[string]any{"id": "q4", "type": "text", "optional": true},
			map[string]any{"id": "q5", "type": "text"},
			map[string]any{"id": "q6", "type": "text"},
			map[string]any{
				"id":   "q7",
				"type": "pricing",
				"fields": map[string]any{
					"minimum_price": "q7.min",
					"maximum_price": "q7.max",
					"price_unit":    "q7.unit",
				},
				"optional_fields": []any{"maximum_price"},
			},
			map[string]any{
				"id":   "q8",
				"type": "pricing",
				"fields": map[string]any{
					"minimum_price": "q8.min",
					"maximum_price": "q8.max",
				},
				"optional_fields": []any{"maximum_price"},
			},
			map[string]any{
				"id":       "q9",
				"question": "Never required question",
				"optional": true,
				"questions": []any{
					map[string]any{"id": "q71", "type": "text"},
					map[string]any{"id": "q72", "type": "text"},
				},
			},
			map[string]any{
				"id":                "q10",
				"question":          "Are you sure you are assured?",
				"type":              "boolean",
				"assuranceApproach": "2answers-type1",
			},
		},
	}})
}

func TestSummary(t *testing.T) {
	summary := summaryManifest(t).Summary(map[string]any{
		"q2":     "some value",
		"q6":     "another value",
		"q7.min": "10",
		"q7.unit": "day",
		"q10":    map[string]any{"value": true, "assurance": "Service provider assertion"},
	})

	get := func(id string) *content.QuestionSummary {
		t.Helper()
		q := summary.Question(id)
		if q == nil {
			t.Fatalf("Question(%q) = nil", id)
		}
		return q
	}

	t.Run("composite value lists answered children", func(t *testing.T) {
		children, ok := get("q1").Value().([]*content.QuestionSummary)
		if !ok {
			t.Fatalf("q1 value has type %T", get("q1").Value())
		}
		ids := []string{}
		for _, child := range children {
			ids = append(ids, child.ID())
		}
		if diff := cmp.Diff([]string{"q2"}, ids); diff != "" {
			t.Fatalf("q1 value mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("required when non optional child missing", func(t *testing.T) {
		if !get("q1").AnswerRequired() {
			t.Fatal("q1 should require an answer while q3 is unanswered")
		}
	})

	t.Run("answered text", func(t *testing.T) {
		if got := get("q2").Value(); got != "some value" {
			t.Fatalf("q2 value = %v", got)
		}
		if get("q2").AnswerRequired() {
			t.Fatal("q2 is answered")
		}
	})

	t.Run("unanswered text", func(t *testing.T) {
		if !get("q3").AnswerRequired() {
			t.Fatal("q3 should require an answer")
		}
		if !get("q5").AnswerRequired() {
			t.Fatal("q5 should require an answer")
		}
		if get("q6").AnswerRequired() {
			t.Fatal("q6 is answered")
		}
	})

	t.Run("optional question displays empty and is never required", func(t *testing.T) {
		if got := get("q4").Value(); got != "" {
			t.Fatalf("q4 value = %v, want empty", got)
		}
		if get("q4").AnswerRequired() {
			t.Fatal("q4 is optional")
		}
		if got := get("q4").Assurance(); got != "" {
			t.Fatalf("q4 assurance = %q, want empty", got)
		}
	})

	t.Run("pricing", func(t *testing.T) {
		if got := get("q7").Value(); got != "£10 a day" {
			t.Fatalf("q7 value = %v, want %q", got, "£10 a day")
		}
		if get("q7").AnswerRequired() {
			t.Fatal("q7 is answered")
		}
		if !get("q8").AnswerRequired() {
			t.Fatal("q8 has no answer")
		}
	})

	t.Run("optional composite never required", func(t *testing.T) {
		if get("q9").AnswerRequired() {
			t.Fatal("q9 is optional")
		}
	})

	t.Run("assurance", func(t *testing.T) {
		if got := get("q10").Value(); got != true {
			t.Fatalf("q10 value = %v, want true", got)
		}
		if got := get("q10").Assurance(); got != "Service provider assertion" {
			t.Fatalf("q10 assurance = %q", got)
		}
	})
}

func TestSummaryPricingSample(t *testing.T) {
	s := mustSection(t, map[string]any{
		"slug": "pricing-section",
		"name": "Pricing section",
		"questions": []any{
			map[string]any{
				"id":   "q",
				"type": "pricing",
				"fields": map[string]any{
					"minimum_price": "q.min",
					"price_unit":    "q.unit",
				},
				"optional_fields": []any{"maximum_price"},
			},
		},
	})

	summary := s.Summary(map[string]any{"q.min": "10", "q.unit": "day"})
	q := summary.Question("q")
	if got := q.Value(); got != "£10 a day" {
		t.Fatalf("value = %v, want %q", got, "£10 a day")
	}
	if q.AnswerRequired() {
		t.Fatal("complete pricing answer should not be required")
	}
}

func TestSummaryFollowups(t *testing.T) {
	s := mustSection(t, map[string]any{
		"slug": "followup-section",
		"name": "Followup section",
		"questions": []any{
			map[string]any{
				"id":   "q12",
				"type": "boolean",
				"followup": map[any]any{
					true: []any{"q13", "q14"},
				},
			},
			map[string]any{"id": "q13", "type": "text"},
			map[string]any{"id": "q14", "type": "text", "optional": true},
		},
	})

	t.Run("trigger matched", func(t *testing.T) {
		summary := s.Summary(map[string]any{"q12": true})
		if summary.Question("q12").AnswerRequired() {
			t.Fatal("q12 is answered")
		}
		if !summary.Question("q13").AnswerRequired() {
			t.Fatal("q13 should be required")
		}
		if summary.Question("q14").AnswerRequired() {
			t.Fatal("q14 is optional and never required")
		}
		if diff := cmp.Diff([]string{"q13"}, summary.RequiredFollowups()); diff != "" {
			t.Fatalf("RequiredFollowups() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("trigger not matched", func(t *testing.T) {
		summary := s.Summary(map[string]any{"q12": false})
		if got := summary.RequiredFollowups(); len(got) != 0 {
			t.Fatalf("RequiredFollowups() = %v, want none", got)
		}
	})

	t.Run("followup target answered", func(t *testing.T) {
		summary := s.Summary(map[string]any{"q12": true, "q13": "done"})
		if got := summary.RequiredFollowups(); len(got) != 0 {
			t.Fatalf("RequiredFollowups() = %v, want none", got)
		}
	})
}

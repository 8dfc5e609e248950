// Package testsupport carries shared fixtures for exercising the content
// pipeline end to end: an in-memory framework filesystem shaped like a real
// content directory, plus builders that panic through *testing.T to keep
// contract tests concise.
package testsupport

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-content/pkg/content"
)

// ContentFS returns an in-memory content directory for the "sample" framework
// with one manifest, a small question set, a message block and a metadata
// block. Tests mutate their own copy; call it once per test.
func ContentFS() fstest.MapFS {
	return fstest.MapFS{
		"frameworks/sample/manifests/edit_service.yml": &fstest.MapFile{
			Data: []byte(`- name: Description of the {{ lot }} service
  editable: true
  questions:
    - service_name
    - service_summary
- name: Pricing
  editable: true
  questions:
    - price
`),
		},
		"frameworks/sample/questions/services/service_name.yml": &fstest.MapFile{
			Data: []byte(`id: serviceName
question: Service name
hint: No more than 50 characters
type: text
validations:
  - name: answer_required
    message: Enter the service name
`),
		},
		"frameworks/sample/questions/services/service_summary.yml": &fstest.MapFile{
			Data: []byte(`id: serviceSummary
question: Service summary
question_advice: Keep it **short**
type: textbox_large
optional: true
`),
		},
		"frameworks/sample/questions/services/price.yml": &fstest.MapFile{
			Data: []byte(`id: priceString
question: How much does it cost?
type: pricing
fields:
  minimum_price: priceMin
  maximum_price: priceMax
  price_unit: priceUnit
optional_fields:
  - maximum_price
depends:
  - "on": lot
    being:
      - SaaS
      - PaaS
`),
		},
		"frameworks/sample/messages/homepage.yml": &fstest.MapFile{
			Data: []byte(`framework_name: Sample framework
states:
  open: "{{ framework_name }} is open for applications"
`),
		},
		"frameworks/sample/metadata/copy_services.yml": &fstest.MapFile{
			Data: []byte(`source_framework: sample-previous
questions_to_copy:
  - serviceName
`),
		},
	}
}

// MustSection builds a section from a raw definition, failing the test on
// error.
func MustSection(t *testing.T, raw map[string]any) *content.Section {
	t.Helper()

	s, err := content.NewSection(raw)
	if err != nil {
		t.Fatalf("build section: %v", err)
	}
	return s
}

// MustManifest builds a manifest from raw section definitions.
func MustManifest(t *testing.T, raw ...map[string]any) *content.Manifest {
	t.Helper()

	m, err := content.NewManifest(raw)
	if err != nil {
		t.Fatalf("build manifest: %v", err)
	}
	return m
}

// MustFilter filters a manifest for ctx, failing the test on error.
func MustFilter(t *testing.T, m *content.Manifest, ctx map[string]any) *content.Manifest {
	t.Helper()

	filtered, err := m.Filter(ctx)
	if err != nil {
		t.Fatalf("filter manifest: %v", err)
	}
	return filtered
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

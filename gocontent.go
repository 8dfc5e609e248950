// Package gocontent is the convenience surface of the content engine: type
// aliases for the common building blocks plus one-call entry points that load,
// filter and import questionnaire content without wiring the sub-packages by
// hand.
package gocontent

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-content/pkg/content"
	"github.com/goliatone/go-content/pkg/loader"
	"github.com/goliatone/go-content/pkg/openapi"
	"github.com/goliatone/go-content/pkg/question"
)

// Manifest is the ordered collection of sections for one questionnaire.
type Manifest = content.Manifest

// Section is one step of a questionnaire.
type Section = content.Section

// Question is the capability surface shared by all question variants.
type Question = question.Question

// Form is an ordered raw submission.
type Form = question.Form

// NotFoundError reports missing content files or blocks.
type NotFoundError = content.NotFoundError

// QuestionNotFoundError reports a submission key no question claims.
type QuestionNotFoundError = content.QuestionNotFoundError

// NewLoader exposes the content loader constructor from the top-level module.
func NewLoader(fsys fs.FS, options ...loader.Option) *loader.Loader {
	return loader.New(fsys, options...)
}

// LoadManifest reads a manifest from a content filesystem and filters it for
// ctx in one step. It is the simplest entry point for callers that just want
// the questions applying to a context.
func LoadManifest(fsys fs.FS, framework, questionSet, name string, ctx map[string]any) (*content.Manifest, error) {
	l := loader.New(fsys)
	m, err := l.Manifest(framework, questionSet, name)
	if err != nil {
		return nil, err
	}
	return m.Filter(ctx)
}

// ImportManifest converts an OpenAPI 3 document into an unfiltered manifest,
// one section per operation carrying a request body.
func ImportManifest(ctx context.Context, document []byte, options ...openapi.Option) (*content.Manifest, error) {
	sections, err := openapi.New(options...).Sections(ctx, document)
	if err != nil {
		return nil, err
	}
	return content.NewManifest(sections)
}

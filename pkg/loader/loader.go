// Package loader reads declarative questionnaire content from a filesystem:
// manifests that list sections, question files resolved and inlined per
// section, and per-framework message and metadata blocks. Parsed files are
// cached per loader; callers always receive copies that never alias the
// cache.
//
// The expected layout below the root is the one the content repositories use:
//
//	frameworks/<framework>/manifests/<manifest>.yml
//	frameworks/<framework>/questions/<question-set>/<question>.yml
//	frameworks/<framework>/messages/<block>.yml
//	frameworks/<framework>/metadata/<block>.yml
package loader

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-content/pkg/content"
	"github.com/goliatone/go-content/pkg/template"
)

// Option configures a Loader.
type Option func(*config)

type config struct {
	root string
}

// WithRoot prefixes every content path with dir.
func WithRoot(dir string) Option {
	return func(cfg *config) {
		cfg.root = dir
	}
}

// Loader loads and caches questionnaire content from a filesystem.
type Loader struct {
	fsys fs.FS
	root string

	mu        sync.Mutex
	questions map[string]map[string]any
	manifests map[string][]map[string]any
	messages  map[string]map[string]any
	metadata  map[string]map[string]any
}

// New builds a Loader reading from fsys.
func New(fsys fs.FS, options ...Option) *Loader {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	return &Loader{
		fsys:      fsys,
		root:      cfg.root,
		questions: make(map[string]map[string]any),
		manifests: make(map[string][]map[string]any),
		messages:  make(map[string]map[string]any),
		metadata:  make(map[string]map[string]any),
	}
}

// Manifest returns the named manifest as a fresh content.Manifest, loading
// and caching its definition on first use.
func (l *Loader) Manifest(framework, questionSet, name string) (*content.Manifest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sections, err := l.manifestSections(framework, questionSet, name)
	if err != nil {
		return nil, err
	}
	copied := make([]map[string]any, len(sections))
	for i, section := range sections {
		copied[i] = copyMap(section)
	}
	return content.NewManifest(copied)
}

// LoadManifest parses and caches the named manifest without building it.
func (l *Loader) LoadManifest(framework, questionSet, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.manifestSections(framework, questionSet, name)
	return err
}

func (l *Loader) manifestSections(framework, questionSet, name string) ([]map[string]any, error) {
	key := framework + "/" + questionSet + "/" + name
	if sections, ok := l.manifests[key]; ok {
		return sections, nil
	}

	manifestPath := l.path("frameworks", framework, "manifests", name+".yml")
	var raw []map[string]any
	if err := l.readYAML(manifestPath, &raw); err != nil {
		return nil, err
	}

	sections := make([]map[string]any, 0, len(raw))
	for _, section := range raw {
		resolved, err := l.resolveSection(framework, questionSet, section)
		if err != nil {
			return nil, fmt.Errorf("loader: manifest %q: %w", name, err)
		}
		sections = append(sections, resolved)
	}
	l.manifests[key] = sections
	return sections, nil
}

func (l *Loader) resolveSection(framework, questionSet string, section map[string]any) (map[string]any, error) {
	out := copyMap(section)
	wrapField(out, "name", false)
	wrapField(out, "description", false)
	wrapField(out, "summary_page_description", false)

	names, _ := out["questions"].([]any)
	questions := make([]any, 0, len(names))
	for _, entry := range names {
		name, ok := entry.(string)
		if !ok {
			return nil, fmt.Errorf("question reference must be a string, got %T", entry)
		}
		q, err := l.question(framework, questionSet, name)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	out["questions"] = questions
	return out, nil
}

// Question returns the raw definition of a single question. The returned
// mapping is a copy; mutating it does not affect later loads.
func (l *Loader) Question(framework, questionSet, name string) (map[string]any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	q, err := l.question(framework, questionSet, name)
	if err != nil {
		return nil, err
	}
	return copyMap(q), nil
}

func (l *Loader) question(framework, questionSet, name string) (map[string]any, error) {
	key := framework + "/" + questionSet + "/" + name
	if q, ok := l.questions[key]; ok {
		return q, nil
	}

	questionPath := l.path("frameworks", framework, "questions", questionSet, name+".yml")
	var raw map[string]any
	if err := l.readYAML(questionPath, &raw); err != nil {
		return nil, err
	}

	if _, ok := raw["id"]; !ok {
		raw["id"] = name
	}
	wrapField(raw, "question", false)
	wrapField(raw, "name", false)
	wrapField(raw, "hint", false)
	wrapField(raw, "question_advice", true)
	wrapOptionDescriptions(raw)

	// Nested question lists reference further question files.
	if nested, ok := raw["questions"].([]any); ok {
		resolved := make([]any, 0, len(nested))
		for _, entry := range nested {
			childName, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("loader: question %q: nested reference must be a string, got %T", name, entry)
			}
			child, err := l.question(framework, questionSet, childName)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, child)
		}
		raw["questions"] = resolved
	}

	l.questions[key] = raw
	return raw, nil
}

// LoadMessages parses and caches the given message blocks for a framework.
// String values anywhere in a block are wrapped as template fields.
func (l *Loader) LoadMessages(framework string, blocks []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, block := range blocks {
		var raw map[string]any
		if err := l.readYAML(l.path("frameworks", framework, "messages", block+".yml"), &raw); err != nil {
			return err
		}
		l.messages[framework+"/"+block] = wrapStrings(raw).(map[string]any)
	}
	return nil
}

// Message returns a previously loaded message block. Blocks must be loaded
// with LoadMessages first; reading an unloaded block is a NotFoundError.
func (l *Loader) Message(framework, block string) (map[string]any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, ok := l.messages[framework+"/"+block]
	if !ok {
		return nil, &content.NotFoundError{What: fmt.Sprintf("message block %q for framework %q", block, framework)}
	}
	return copyMap(raw), nil
}

// LoadMetadata parses and caches the given metadata blocks for a framework.
// Values are kept verbatim.
func (l *Loader) LoadMetadata(framework string, blocks []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, block := range blocks {
		var raw map[string]any
		if err := l.readYAML(l.path("frameworks", framework, "metadata", block+".yml"), &raw); err != nil {
			return err
		}
		l.metadata[framework+"/"+block] = raw
	}
	return nil
}

// Metadata returns a previously loaded metadata block, NotFoundError when the
// block was never loaded.
func (l *Loader) Metadata(framework, block string) (map[string]any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, ok := l.metadata[framework+"/"+block]
	if !ok {
		return nil, &content.NotFoundError{What: fmt.Sprintf("metadata block %q for framework %q", block, framework)}
	}
	return copyMap(raw), nil
}

func (l *Loader) path(parts ...string) string {
	if l.root != "" {
		parts = append([]string{l.root}, parts...)
	}
	return path.Join(parts...)
}

func (l *Loader) readYAML(name string, out any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return &content.NotFoundError{What: fmt.Sprintf("content file %q", name)}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("loader: parse %s: %w", name, err)
	}
	return nil
}

// wrapField replaces a string value with an unrendered template field.
func wrapField(m map[string]any, key string, markdown bool) {
	value, ok := m[key].(string)
	if !ok {
		return
	}
	if markdown {
		m[key] = template.NewMarkdown(value)
		return
	}
	m[key] = template.New(value)
}

// wrapOptionDescriptions wraps the description of each entry of an options
// list; option labels and values stay plain.
func wrapOptionDescriptions(raw map[string]any) {
	options, ok := raw["options"].([]any)
	if !ok {
		return
	}
	for _, entry := range options {
		if option, ok := entry.(map[string]any); ok {
			wrapField(option, "description", false)
		}
	}
}

// wrapStrings recursively wraps every string leaf as a template field.
func wrapStrings(value any) any {
	switch typed := value.(type) {
	case string:
		return template.New(typed)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, v := range typed {
			out[key] = wrapStrings(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = wrapStrings(v)
		}
		return out
	default:
		return value
	}
}

// copyMap deep-copies nested maps and slices so cached definitions never leak
// mutable state.
func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = copyValue(value)
	}
	return out
}

func copyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return copyMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = copyValue(v)
		}
		return out
	default:
		return value
	}
}

// FrameworkNames lists the frameworks available below the root, in directory
// order.
func (l *Loader) FrameworkNames() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, l.path("frameworks"))
	if err != nil {
		return nil, &content.NotFoundError{What: "frameworks directory"}
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			out = append(out, entry.Name())
		}
	}
	return out, nil
}

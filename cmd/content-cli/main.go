// content-cli loads a framework's questionnaire content from disk, filters it
// for a context and either prints the resulting outline or walks it
// interactively on the terminal.
//
// Usage:
//
//	content-cli -content ./content -framework g-cloud-6 -question-set services \
//	    -manifest edit_service -context lot=SaaS [-interactive]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-content/pkg/content"
	"github.com/goliatone/go-content/pkg/loader"
	"github.com/goliatone/go-content/pkg/prompt"
)

// contextFlag collects repeated -context key=value pairs.
type contextFlag map[string]any

func (f contextFlag) String() string {
	pairs := make([]string, 0, len(f))
	for key, value := range f {
		pairs = append(pairs, fmt.Sprintf("%s=%v", key, value))
	}
	return strings.Join(pairs, ",")
}

func (f contextFlag) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", raw)
	}
	f[key] = value
	return nil
}

func main() {
	var (
		contentDir  = flag.String("content", "content", "root directory of the content files")
		framework   = flag.String("framework", "", "framework name, e.g. g-cloud-6")
		questionSet = flag.String("question-set", "services", "question set the manifest refers into")
		manifest    = flag.String("manifest", "", "manifest name to load")
		interactive = flag.Bool("interactive", false, "walk the filtered manifest on the terminal")
		filterCtx   = contextFlag{}
	)
	flag.Var(filterCtx, "context", "filter context entry as key=value (repeatable)")
	flag.Parse()

	if *framework == "" || *manifest == "" {
		flag.Usage()
		os.Exit(2)
	}

	l := loader.New(os.DirFS(*contentDir))
	m, err := l.Manifest(*framework, *questionSet, *manifest)
	if err != nil {
		log.Fatalf("load manifest: %v", err)
	}

	filtered, err := m.Filter(filterCtx)
	if err != nil {
		log.Fatalf("filter manifest: %v", err)
	}

	if *interactive {
		if err := walk(filtered); err != nil {
			log.Fatalf("walk manifest: %v", err)
		}
		return
	}

	if err := outline(filtered); err != nil {
		log.Fatalf("print outline: %v", err)
	}
}

// outline prints the filtered manifest as numbered sections and questions.
func outline(m *content.Manifest) error {
	for _, section := range m.Sections() {
		name, err := section.Name()
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", name, section.Slug())
		for _, q := range section.Questions() {
			optional := ""
			if q.Optional() {
				optional = " [optional]"
			}
			fmt.Printf("  %d. %s (%s, %s)%s\n", q.Number(), q.Text(), q.ID(), q.Type(), optional)
		}
	}
	return nil
}

// walk prompts for every question and prints the marshalled answers as YAML.
func walk(m *content.Manifest) error {
	walker := prompt.NewWalker()
	form, err := walker.WalkManifest(context.Background(), m)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
		return err
	}

	data, err := m.GetAllData(form)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.txt
var promptTemplates embed.FS

// Builder renders generation prompts from embedded templates. Output
// is deterministic: the same query and evidence block always produce
// the same prompt, with no truncation applied. Length limits imposed
// by the generation backend are the caller's problem.
type Builder struct {
	tmpl *template.Template
}

// NewBuilder parses the embedded prompt templates.
func NewBuilder() (*Builder, error) {
	tmpl, err := template.ParseFS(promptTemplates, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}
	return &Builder{tmpl: tmpl}, nil
}

// Summary builds the news-summary prompt from the literal user query
// and the formatted evidence block.
func (b *Builder) Summary(query, evidenceBlock string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Query    string
		Evidence string
	}{Query: query, Evidence: evidenceBlock}

	if err := b.tmpl.ExecuteTemplate(&buf, "summary_prompt.txt", data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

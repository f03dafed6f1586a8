package agent

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"sort"
	"text/template"
	"time"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/backend"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

// maxDocChars caps how much of a document body is rendered into a prompt.
// The cap applies to rendering only; persisted artifacts are never truncated.
const maxDocChars = 8000

// Agent is one named unit of generation work, bound to a system prompt
// template and a user payload template. Agents hold no run-scoped state, so
// the same instance can serve concurrent runs.
type Agent struct {
	Name        string
	Description string
	system      *template.Template
	user        *template.Template
}

// New creates an agent with templates loaded by name from the prompt filesystem
func New(name, description string, prompts fs.FS, systemFile, userFile string) (*Agent, error) {
	if name == "" {
		return nil, fmt.Errorf("agent name is required")
	}
	system, err := loadTemplate(prompts, systemFile)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", name, err)
	}
	user, err := loadTemplate(prompts, userFile)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", name, err)
	}
	return &Agent{Name: name, Description: description, system: system, user: user}, nil
}

// Document is one named document rendered into a prompt
type Document struct {
	Name string
	Text string
}

// Output is one prior stage output rendered into a prompt
type Output struct {
	Name    string
	Content string
}

// promptData is the rendering context shared by system and user templates
type promptData struct {
	Operation string
	Documents []Document
	Previous  []Output
}

// Execute renders the agent's prompts against the documents and prior
// outputs and makes exactly one backend call. Backend failures propagate
// unchanged; the agent never retries.
func (a *Agent) Execute(ctx context.Context, b backend.Backend, operation string, docs types.DocumentSet, prev *types.Outputs) (*types.StageResult, error) {
	data := buildPromptData(operation, docs, prev)

	system, err := render(a.system, data)
	if err != nil {
		return nil, fmt.Errorf("rendering system prompt: %w", err)
	}
	prompt, err := render(a.user, data)
	if err != nil {
		return nil, fmt.Errorf("rendering user prompt: %w", err)
	}

	// Backend failures pass through unchanged; the orchestrator attaches
	// run and stage context.
	gen, err := b.Generate(ctx, system, prompt)
	if err != nil {
		return nil, err
	}

	return &types.StageResult{
		Name:    a.Name,
		Content: gen.Content,
		Meta: types.StageMeta{
			Name:       a.Name,
			Backend:    b.Name(),
			Model:      b.Model(),
			Usage:      gen.Usage,
			DurationMs: gen.Duration.Milliseconds(),
			Timestamp:  time.Now().UTC(),
		},
	}, nil
}

func buildPromptData(operation string, docs types.DocumentSet, prev *types.Outputs) promptData {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	data := promptData{Operation: operation}
	for _, name := range names {
		data.Documents = append(data.Documents, Document{Name: name, Text: truncate(docs[name], maxDocChars)})
	}
	if prev != nil {
		for _, name := range prev.Names() {
			content, _ := prev.Get(name)
			data.Previous = append(data.Previous, Output{Name: name, Content: content})
		}
	}
	return data
}

func loadTemplate(prompts fs.FS, name string) (*template.Template, error) {
	raw, err := fs.ReadFile(prompts, name)
	if err != nil {
		return nil, fmt.Errorf("reading prompt template: %w", err)
	}
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"snippet": truncate,
	}).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing prompt template: %w", err)
	}
	return tmpl, nil
}

func render(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

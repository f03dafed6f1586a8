package pipeline

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/agent"
)

// Definition is an on-disk pipeline description. Each stage names its prompt
// templates within the prompt filesystem, so a custom workflow needs no code
// changes.
type Definition struct {
	Stages []StageDefinition `yaml:"stages"`
}

// StageDefinition describes one stage in a pipeline definition file
type StageDefinition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	System      string `yaml:"system"`
	User        string `yaml:"user"`
}

// Load reads and validates a YAML pipeline definition, binding each stage
// to templates from the prompt filesystem
func Load(path string, prompts fs.FS) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline file: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing pipeline YAML: %w", err)
	}
	if len(def.Stages) == 0 {
		return nil, fmt.Errorf("pipeline file %s defines no stages", path)
	}

	agents := make([]*agent.Agent, 0, len(def.Stages))
	for i, sd := range def.Stages {
		if sd.Name == "" {
			return nil, fmt.Errorf("stage %d: name is required", i)
		}
		if sd.System == "" || sd.User == "" {
			return nil, fmt.Errorf("stage %s: system and user templates are required", sd.Name)
		}
		a, err := agent.New(sd.Name, sd.Description, prompts, sd.System, sd.User)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}

	return New(agents...)
}

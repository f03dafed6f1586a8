package pipeline

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/agent"
)

// ErrDuplicateStage is returned when two stages share a name. Stage names
// key the accumulated-outputs map, so a collision would silently corrupt
// downstream context.
var ErrDuplicateStage = errors.New("duplicate stage name")

// Pipeline is an ordered, immutable sequence of agents defining one workflow
type Pipeline struct {
	stages []*agent.Agent
}

// New validates stage names and builds a pipeline
func New(stages ...*agent.Agent) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("pipeline must have at least one stage")
	}
	seen := make(map[string]bool, len(stages))
	for i, s := range stages {
		if s.Name == "" {
			return nil, fmt.Errorf("stage %d: name is required", i)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStage, s.Name)
		}
		seen[s.Name] = true
	}
	owned := make([]*agent.Agent, len(stages))
	copy(owned, stages)
	return &Pipeline{stages: owned}, nil
}

// Default builds the standard five-stage BOP standardisation pipeline
func Default(prompts fs.FS) (*Pipeline, error) {
	agents, err := agent.Builtin(prompts)
	if err != nil {
		return nil, err
	}
	return New(agents...)
}

// Stages returns the stages in execution order
func (p *Pipeline) Stages() []*agent.Agent {
	stages := make([]*agent.Agent, len(p.stages))
	copy(stages, p.stages)
	return stages
}

// Len returns the number of stages
func (p *Pipeline) Len() int {
	return len(p.stages)
}

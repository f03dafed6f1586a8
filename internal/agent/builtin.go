package agent

import (
	"embed"
	"io/fs"
)

//go:embed prompts/*.md
var defaultPrompts embed.FS

// DefaultPrompts returns the embedded prompt templates. Callers can swap in
// an os.DirFS to override prompts without rebuilding.
func DefaultPrompts() fs.FS {
	sub, err := fs.Sub(defaultPrompts, "prompts")
	if err != nil {
		// embed paths are fixed at compile time
		panic(err)
	}
	return sub
}

// Spec names an agent and its prompt template files
type Spec struct {
	Name        string
	Description string
	System      string
	User        string
}

// BuiltinSpecs lists the five standard BOP standardisation agents in
// execution order. Later agents depend on the accumulated outputs of
// earlier ones.
func BuiltinSpecs() []Spec {
	return []Spec{
		{
			Name:        "comparison",
			Description: "Inventory, structure mapping, and line-by-line comparison across rigs",
			System:      "comparison_system.md",
			User:        "comparison_user.md",
		},
		{
			Name:        "gaps",
			Description: "Missing steps, uncovered hazards, and ROP-JSA misalignments",
			System:      "gaps_system.md",
			User:        "gaps_user.md",
		},
		{
			Name:        "hp_evaluation",
			Description: "Human performance maturity and error trap assessment",
			System:      "hp_evaluation_system.md",
			User:        "hp_evaluation_user.md",
		},
		{
			Name:        "equipment_validation",
			Description: "Equipment capability comparison and standardisation feasibility",
			System:      "equipment_validation_system.md",
			User:        "equipment_validation_user.md",
		},
		{
			Name:        "standardisation",
			Description: "Synthesis into a standardized ROP, JSA, and rollout package",
			System:      "standardisation_system.md",
			User:        "standardisation_user.md",
		},
	}
}

// Builtin constructs the standard agents from a prompt filesystem
func Builtin(prompts fs.FS) ([]*Agent, error) {
	specs := BuiltinSpecs()
	agents := make([]*Agent, 0, len(specs))
	for _, spec := range specs {
		a, err := New(spec.Name, spec.Description, prompts, spec.System, spec.User)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/backend"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/pipeline"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/run"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

// Config holds everything one workflow run needs
type Config struct {
	Operation  string
	Documents  types.DocumentSet
	Pipeline   *pipeline.Pipeline
	OutputRoot string
}

// Result reports where a completed run landed
type Result struct {
	Dir     string
	Summary *types.Summary
}

// Orchestrator executes a pipeline sequentially, threading accumulated
// outputs through the stages and persisting each result before moving on.
// It holds no state between runs; every Run builds a fresh run.Context.
type Orchestrator struct {
	backend backend.Backend
	writer  run.Writer
	clock   func() time.Time
}

// New creates an orchestrator bound to one backend and artifact writer
func New(b backend.Backend, w run.Writer) *Orchestrator {
	return &Orchestrator{backend: b, writer: w, clock: time.Now}
}

// SetClock overrides the time source, used by tests to force collisions
func (o *Orchestrator) SetClock(clock func() time.Time) {
	o.clock = clock
}

// Run executes the complete workflow. Stages run strictly in pipeline
// order; each stage sees the outputs of every stage before it. The first
// failure stops the run, leaves the completed artifacts on disk, and
// records a failed summary naming the stage.
func (o *Orchestrator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Operation == "" {
		return nil, fmt.Errorf("operation name is required")
	}
	if len(cfg.Documents) == 0 {
		return nil, fmt.Errorf("at least one document is required")
	}
	if cfg.Pipeline == nil || cfg.Pipeline.Len() == 0 {
		return nil, fmt.Errorf("pipeline is required")
	}

	rc, err := run.NewContext(cfg.OutputRoot, cfg.Operation, o.clock())
	if err != nil {
		return nil, err
	}

	fmt.Printf("Starting workflow for %s\n", cfg.Operation)
	fmt.Printf("Backend: %s (%s)\n", o.backend.Name(), o.backend.Model())
	fmt.Printf("Output: %s\n\n", rc.Dir)

	stages := cfg.Pipeline.Stages()
	for i, ag := range stages {
		if err := ctx.Err(); err != nil {
			return nil, o.fail(rc, ag.Name, err)
		}

		fmt.Printf("=== Stage %d/%d: %s ===\n", i+1, len(stages), ag.Name)

		res, err := ag.Execute(ctx, o.backend, cfg.Operation, cfg.Documents, rc.Outputs())
		if err != nil {
			return nil, o.fail(rc, ag.Name, err)
		}

		if err := o.writer.WriteStage(rc.Dir, res); err != nil {
			return nil, o.fail(rc, ag.Name, fmt.Errorf("persisting stage result: %w", err))
		}
		if err := rc.Append(res); err != nil {
			return nil, o.fail(rc, ag.Name, err)
		}

		fmt.Printf("✓ %s completed (%d tokens, %dms)\n\n", ag.Name, res.Meta.Usage.TotalTokens, res.Meta.DurationMs)
	}

	summary := rc.Summary(o.backend.Name(), o.backend.Model(), o.clock(), "", nil)
	if err := o.writer.WriteSummary(rc.Dir, summary); err != nil {
		return nil, fmt.Errorf("run %s: %w", rc.ID, err)
	}

	fmt.Printf("Workflow completed: %d stages, %d tokens\n", len(summary.Stages), summary.Totals.Usage.TotalTokens)
	fmt.Printf("Results saved to: %s\n", rc.Dir)

	return &Result{Dir: rc.Dir, Summary: summary}, nil
}

// fail writes a failure summary covering the completed stages and returns
// the causing error annotated with run and stage. Remaining stages are not
// attempted: each depends on its predecessors' output.
func (o *Orchestrator) fail(rc *run.Context, stage string, cause error) error {
	summary := rc.Summary(o.backend.Name(), o.backend.Model(), o.clock(), stage, cause)
	if werr := o.writer.WriteSummary(rc.Dir, summary); werr != nil {
		fmt.Printf("warning: writing failure summary: %v\n", werr)
	}
	return fmt.Errorf("run %s: stage %s: %w", rc.ID, stage, cause)
}

package run

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

// ErrConflict is returned when a run directory already exists. Run
// directories are never reused; two runs starting within the same timestamp
// resolution must fail rather than silently merge.
var ErrConflict = errors.New("run directory already exists")

// timestampLayout names run directories; one directory per second per operation
const timestampLayout = "20060102-150405"

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug converts an operation name into a directory-safe identifier
func Slug(operation string) string {
	slug := strings.ToLower(operation)
	slug = nonAlphaNum.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Context is the live state of one pipeline execution: its reserved output
// directory, the accumulated stage outputs, and running totals.
type Context struct {
	Operation    string
	ID           string // "<operation-slug>/<timestamp>", equals the path under the output root
	InvocationID string
	Dir          string
	StartedAt    time.Time

	outputs *types.Outputs
	stages  []types.StageMeta
	totals  types.Totals
}

// NewContext reserves a timestamped run directory and returns the context
// owning it. The leaf directory is created with os.Mkdir so an existing
// directory surfaces as ErrConflict instead of being written into.
func NewContext(outputRoot, operation string, now time.Time) (*Context, error) {
	slug := Slug(operation)
	if slug == "" {
		return nil, fmt.Errorf("operation name %q produces an empty identifier", operation)
	}
	timestamp := now.Format(timestampLayout)
	dir := filepath.Join(outputRoot, slug, timestamp)

	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return nil, fmt.Errorf("creating operation directory: %w", err)
	}
	if err := os.Mkdir(dir, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, dir)
		}
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	return &Context{
		Operation:    operation,
		ID:           slug + "/" + timestamp,
		InvocationID: uuid.NewString(),
		Dir:          dir,
		StartedAt:    now,
		outputs:      types.NewOutputs(),
	}, nil
}

// Append records a completed stage result and extends the totals
func (c *Context) Append(res *types.StageResult) error {
	if err := c.outputs.Append(res.Name, res.Content); err != nil {
		return err
	}
	c.stages = append(c.stages, res.Meta)
	c.totals.Usage.Add(res.Meta.Usage)
	c.totals.DurationMs += res.Meta.DurationMs
	return nil
}

// Outputs returns the accumulated outputs of all completed stages
func (c *Context) Outputs() *types.Outputs {
	return c.outputs
}

// Completed returns how many stages have finished
func (c *Context) Completed() int {
	return len(c.stages)
}

// Summary projects the context into the final run report. A non-empty
// failedStage marks the run failed; runErr supplies the error text.
func (c *Context) Summary(backendName, model string, now time.Time, failedStage string, runErr error) *types.Summary {
	s := &types.Summary{
		Operation:    c.Operation,
		RunID:        c.ID,
		InvocationID: c.InvocationID,
		Backend:      backendName,
		Model:        model,
		StartedAt:    c.StartedAt.UTC(),
		Status:       types.StatusCompleted,
		Stages:       append([]types.StageMeta(nil), c.stages...),
		Totals:       c.totals,
		DurationMs:   now.Sub(c.StartedAt).Milliseconds(),
	}
	if failedStage != "" {
		s.Status = types.StatusFailed
		s.FailedStage = failedStage
		if runErr != nil {
			s.Error = runErr.Error()
		}
	}
	return s
}

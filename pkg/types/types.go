package types

import "time"

// Run statuses recorded in summary.json
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// DocumentSet maps a document label (rig + document kind) to its raw text.
// It is owned by the caller and never mutated by the workflow engine.
type DocumentSet map[string]string

// Usage tracks token consumption for a single generation call
type Usage struct {
	PromptTokens     int `json:"tokens_prompt"`
	CompletionTokens int `json:"tokens_completion"`
	TotalTokens      int `json:"tokens_total"`
}

// Add accumulates another usage record
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// Generation is the raw output of a single backend call
type Generation struct {
	Content  string
	Usage    Usage
	Duration time.Duration
}

// StageMeta describes one stage execution. It is written next to the stage
// content as <name>.meta.json and repeated in the run summary, so it carries
// the stage name to stay self-describing.
type StageMeta struct {
	Name       string    `json:"name"`
	Backend    string    `json:"backend"`
	Model      string    `json:"model"`
	Usage      Usage     `json:"tokens"`
	DurationMs int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// StageResult is the content and metadata produced by one stage in one run
type StageResult struct {
	Name    string
	Content string
	Meta    StageMeta
}

// Totals aggregates token and time consumption across stages
type Totals struct {
	Usage      Usage `json:"tokens"`
	DurationMs int64 `json:"duration_ms"`
}

// Summary is the aggregate report written as summary.json after a run
// completes or fails
type Summary struct {
	Operation    string      `json:"operation"`
	RunID        string      `json:"run_id"`
	InvocationID string      `json:"invocation_id"`
	Backend      string      `json:"backend"`
	Model        string      `json:"model"`
	StartedAt    time.Time   `json:"started_at"`
	Status       string      `json:"status"`
	FailedStage  string      `json:"failed_stage,omitempty"`
	Error        string      `json:"error,omitempty"`
	Stages       []StageMeta `json:"stages"`
	Totals       Totals      `json:"totals"`
	DurationMs   int64       `json:"duration_ms"`
}

// Rig describes one rig directory discovered under the source documents root
type Rig struct {
	Name      string   `json:"name"`
	Documents []string `json:"documents"`
}

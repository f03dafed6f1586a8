package run

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

// SummaryFile is the name of the aggregate report in every run directory
const SummaryFile = "summary.json"

// Writer persists stage results and the run summary
type Writer interface {
	// WriteStage persists a stage's content and metadata as a pair
	WriteStage(dir string, res *types.StageResult) error

	// WriteSummary persists the aggregate run report
	WriteSummary(dir string, summary *types.Summary) error
}

// FileWriter implements Writer on the local filesystem. Every file goes
// through write-to-temp-then-rename so a crash mid-write never leaves a
// half-written artifact under its final name.
type FileWriter struct{}

// NewFileWriter creates a filesystem artifact writer
func NewFileWriter() *FileWriter {
	return &FileWriter{}
}

// WriteStage writes <name>.md and <name>.meta.json together; a stage
// artifact on disk always has its metadata next to it
func (w *FileWriter) WriteStage(dir string, res *types.StageResult) error {
	mdPath := filepath.Join(dir, res.Name+".md")
	if err := writeAtomic(mdPath, []byte(res.Content)); err != nil {
		return fmt.Errorf("writing stage content: %w", err)
	}

	meta, err := json.MarshalIndent(res.Meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling stage metadata: %w", err)
	}
	metaPath := filepath.Join(dir, res.Name+".meta.json")
	if err := writeAtomic(metaPath, meta); err != nil {
		return fmt.Errorf("writing stage metadata: %w", err)
	}
	return nil
}

// WriteSummary writes summary.json; called once per run, on success or failure
func (w *FileWriter) WriteSummary(dir string, summary *types.Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := writeAtomic(filepath.Join(dir, SummaryFile), data); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// ReadSummary loads the summary from a run directory
func ReadSummary(dir string) (*types.Summary, error) {
	data, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	if err != nil {
		return nil, fmt.Errorf("reading summary: %w", err)
	}
	var summary types.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parsing summary: %w", err)
	}
	return &summary, nil
}

func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

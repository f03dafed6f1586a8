package cmd

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/agent"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/backend"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/config"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/ingest"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/orchestrator"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/pipeline"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/run"
)

func cmdRun(args []string) error {
	fs2 := flag.NewFlagSet("run", flag.ExitOnError)
	operation := fs2.String("operation", "", "Operation name, e.g. \"BOP Installation\" (required)")
	backendName := fs2.String("backend", "openai", "Generation backend: openai, anthropic, mock")
	sourceDir := fs2.String("source", "data/source_documents", "Root folder containing one subfolder per rig")
	outputDir := fs2.String("output", "", "Base directory for outputs (default from settings)")
	pipelinePath := fs2.String("pipeline", "", "Optional YAML pipeline definition")
	promptsDir := fs2.String("prompts", "", "Optional directory overriding the built-in prompt templates")
	combined := fs2.Bool("combined", false, "Collapse all rig documents into a single combined document")
	dryRun := fs2.Bool("dry-run", false, "Use the mock backend; no API calls are made")
	fs2.StringVar(operation, "op", "", "Operation name (shorthand)")
	fs2.StringVar(outputDir, "o", "", "Output directory (shorthand)")

	fs2.Parse(args)

	if *operation == "" {
		fmt.Fprintln(os.Stderr, "Error: --operation is required")
		fmt.Fprintln(os.Stderr, "Usage: bopflow run --operation \"BOP Installation\" [--backend openai|anthropic]")
		return fmt.Errorf("--operation is required")
	}

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return err
	}
	if *dryRun {
		*backendName = "mock"
	}
	if err := settings.Validate(*backendName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	if *outputDir == "" {
		*outputDir = settings.OutputDir
	}

	// Ingest rig documents
	rigs, err := ingest.ListRigs(*sourceDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing rigs: %v\n", err)
		return err
	}
	if len(rigs) == 0 {
		fmt.Fprintf(os.Stderr, "No rigs found under %s\n", *sourceDir)
		return fmt.Errorf("no rigs found under %s", *sourceDir)
	}
	documents, err := ingest.LoadDocuments(*sourceDir, rigs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading documents: %v\n", err)
		return err
	}
	if *combined {
		documents = ingest.Combine(documents)
	}
	fmt.Printf("Loaded %d documents from %d rigs\n", len(documents), len(rigs))

	// Build the pipeline
	var prompts fs.FS = agent.DefaultPrompts()
	if *promptsDir != "" {
		prompts = os.DirFS(*promptsDir)
	}
	var pipe *pipeline.Pipeline
	if *pipelinePath != "" {
		pipe, err = pipeline.Load(*pipelinePath, prompts)
	} else {
		pipe, err = pipeline.Default(prompts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building pipeline: %v\n", err)
		return err
	}

	b, err := backend.New(*backendName, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	// Cancel between stages on interrupt; completed artifacts stay on disk
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, stopping after the current stage...")
		cancel()
	}()

	orch := orchestrator.New(b, run.NewFileWriter())
	result, err := orch.Run(ctx, orchestrator.Config{
		Operation:  *operation,
		Documents:  documents,
		Pipeline:   pipe,
		OutputRoot: *outputDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	printSummary(result.Summary)
	return nil
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/backend"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/config"
)

func cmdCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	backendName := fs.String("backend", "openai", "Generation backend: openai, anthropic, mock")
	fs.Parse(args)

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return err
	}
	if err := settings.Validate(*backendName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	b, err := backend.New(*backendName, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	fmt.Printf("Checking %s (%s)...\n", b.Name(), b.Model())
	gen, err := b.Generate(context.Background(),
		"You are a connectivity probe. Reply with a single word.",
		"Reply with OK.")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backend check failed: %v\n", err)
		return err
	}

	fmt.Printf("✓ %s responded in %dms (%d tokens): %s\n",
		b.Name(), gen.Duration.Milliseconds(), gen.Usage.TotalTokens, gen.Content)
	return nil
}

package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/ingest"
)

func cmdRigs(args []string) error {
	fs := flag.NewFlagSet("rigs", flag.ExitOnError)
	sourceDir := fs.String("source", "data/source_documents", "Root folder containing one subfolder per rig")
	fs.Parse(args)

	rigs, err := ingest.ListRigs(*sourceDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	if len(rigs) == 0 {
		fmt.Printf("No rigs found under %s\n\n", *sourceDir)
		fmt.Println("Please ensure:")
		fmt.Printf("  1. The directory %s exists\n", *sourceDir)
		fmt.Println("  2. It contains subdirectories named after rigs")
		fmt.Println("  3. Each rig subdirectory contains .txt or .md files")
		return nil
	}

	fmt.Printf("\nFound %d rigs under %s\n", len(rigs), *sourceDir)
	fmt.Println(strings.Repeat("─", 60))
	for _, rig := range rigs {
		fmt.Printf("%s (%d documents)\n", rig.Name, len(rig.Documents))
		for _, doc := range rig.Documents {
			fmt.Printf("  - %s\n", doc)
		}
	}
	return nil
}

package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/config"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/run"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
)

func cmdRuns(args []string) error {
	if len(args) < 1 {
		printRunsUsage()
		return nil
	}

	switch args[0] {
	case "ls", "list":
		return cmdRunsLs(args[1:])
	case "show":
		return cmdRunsShow(args[1:])
	case "help", "-h", "--help":
		printRunsUsage()
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown runs subcommand: %s\n", args[0])
		printRunsUsage()
		return fmt.Errorf("unknown runs subcommand: %s", args[0])
	}
}

func printRunsUsage() {
	fmt.Println(`bopflow runs - View workflow runs and results

Usage:
  bopflow runs <command> [options]

Commands:
  ls       List all runs in the output directory
  show     Show the summary for one run

Examples:
  bopflow runs ls
  bopflow runs ls -o ./outputs
  bopflow runs show outputs/bop-installation/20260830-104500`)
}

type runInfo struct {
	Dir     string
	Summary *types.Summary
}

func cmdRunsLs(args []string) error {
	fs := flag.NewFlagSet("runs ls", flag.ExitOnError)
	outputDir := fs.String("output", "", "Output directory to scan")
	fs.StringVar(outputDir, "o", "", "Output directory (shorthand)")
	fs.Parse(args)

	if *outputDir == "" {
		settings, err := config.Load()
		if err != nil {
			return err
		}
		*outputDir = settings.OutputDir
	}

	runs, err := collectRuns(*outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No output directory found. Run a workflow first.")
			return nil
		}
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs found.")
		return nil
	}

	// Newest first
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Summary.StartedAt.After(runs[j].Summary.StartedAt)
	})

	fmt.Printf("\n%s%s Runs %s\n", colorBold, colorCyan, colorReset)
	fmt.Println(strings.Repeat("─", 80))
	for _, r := range runs {
		status := colorGreen + r.Summary.Status + colorReset
		if r.Summary.Status == types.StatusFailed {
			status = colorRed + r.Summary.Status + colorReset
		}
		fmt.Printf("%s%-48s%s %s  %s/%s  %d tokens\n",
			colorBold, r.Summary.RunID, colorReset, status,
			r.Summary.Backend, r.Summary.Model, r.Summary.Totals.Usage.TotalTokens)
		fmt.Printf("  %s%s · %d stages · %dms%s\n",
			colorDim, r.Summary.StartedAt.Format("2006-01-02 15:04:05"),
			len(r.Summary.Stages), r.Summary.DurationMs, colorReset)
	}
	return nil
}

func cmdRunsShow(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bopflow runs show <run-directory>")
		return fmt.Errorf("run directory is required")
	}

	summary, err := run.ReadSummary(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	printSummary(summary)
	return nil
}

// collectRuns scans <outputDir>/<operation>/<timestamp> for summary files
func collectRuns(outputDir string) ([]runInfo, error) {
	ops, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, err
	}

	var runs []runInfo
	for _, op := range ops {
		if !op.IsDir() {
			continue
		}
		opDir := filepath.Join(outputDir, op.Name())
		entries, err := os.ReadDir(opDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Join(opDir, entry.Name())
			summary, err := run.ReadSummary(dir)
			if err != nil {
				continue
			}
			runs = append(runs, runInfo{Dir: dir, Summary: summary})
		}
	}
	return runs, nil
}

func printSummary(s *types.Summary) {
	fmt.Printf("\n%sOperation:%s %s\n", colorBold, colorReset, s.Operation)
	fmt.Printf("%sRun:%s       %s\n", colorBold, colorReset, s.RunID)
	fmt.Printf("%sBackend:%s   %s (%s)\n", colorBold, colorReset, s.Backend, s.Model)
	if s.Status == types.StatusFailed {
		fmt.Printf("%sStatus:%s    %s%s%s (failed stage: %s)\n", colorBold, colorReset, colorRed, s.Status, colorReset, s.FailedStage)
		if s.Error != "" {
			fmt.Printf("%sError:%s     %s\n", colorBold, colorReset, s.Error)
		}
	} else {
		fmt.Printf("%sStatus:%s    %s%s%s\n", colorBold, colorReset, colorGreen, s.Status, colorReset)
	}

	if len(s.Stages) > 0 {
		fmt.Println()
		for _, stage := range s.Stages {
			fmt.Printf("  %-24s %6d tokens  %6dms\n", stage.Name, stage.Usage.TotalTokens, stage.DurationMs)
		}
	}
	fmt.Printf("\n%sTotals:%s    %d tokens, %dms\n", colorBold, colorReset, s.Totals.Usage.TotalTokens, s.DurationMs)
}

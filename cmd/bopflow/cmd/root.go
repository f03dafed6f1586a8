package cmd

import "fmt"

func Execute(args []string) error {
	if len(args) < 1 {
		printUsage()
		return nil
	}

	switch args[0] {
	case "run":
		return cmdRun(args[1:])
	case "runs":
		return cmdRuns(args[1:])
	case "rigs":
		return cmdRigs(args[1:])
	case "check":
		return cmdCheck(args[1:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		fmt.Printf("Unknown command: %s\n", args[0])
		printUsage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printUsage() {
	fmt.Println(`bopflow - Multi-agent BOP procedure standardisation workflow

Usage:
  bopflow <command> [options]

Commands:
  run      Run the complete standardisation workflow
  runs     View past workflow runs and results
  rigs     List available rig document directories
  check    Verify backend credentials with a small generation call

Run 'bopflow <command> --help' for details on a specific command.`)
}

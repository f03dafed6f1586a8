package main

import (
	"os"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/cmd/bopflow/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// Package main provides the expense-tracker CLI.
package main

import (
	"errors"
	"os"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/cli"
	"github.com/ProgrammerSahilG/Expense-tracker/internal/setup"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps a CLI error to the process exit status. Setup step
// failures carry the external command's own exit code.
func exitCode(err error) int {
	var stepErr *setup.StepError
	if errors.As(err, &stepErr) {
		return stepErr.ExitCode
	}
	return 1
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/cli/config"
	"github.com/ProgrammerSahilG/Expense-tracker/internal/setup"
)

// NewSetupCommand creates the setup command.
func NewSetupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Install deployment dependencies and upgrade the package manager",
		Long: `Install deployment dependencies and upgrade the package manager.

Runs two commands in order, stopping at the first failure:

  1. pip install -r requirements.txt
  2. pip install --upgrade pip

The package manager's output is passed through unchanged. On failure the
process exits with the failing command's exit code; the upgrade step is
never attempted after a failed install.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := config.GetLogger(cmd.Context())
			installer := setup.NewInstaller(logger)
			return installer.Run(cmd.Context())
		},
	}

	return cmd
}

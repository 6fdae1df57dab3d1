package commands

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all expenses, newest first",
		Example: `  # List expenses as a table
  expense-tracker list

  # List expenses as JSON
  expense-tracker list --output json

  # List expenses as CSV
  expense-tracker list -o csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			expenses, err := cmdCtx.Store.ListExpenses()
			if err != nil {
				return err
			}

			return renderExpenses(cmd.OutOrStdout(), expenses, cmdCtx.Cfg.OutputFormat, cmdCtx.Cfg.Currency)
		},
	}

	return cmd
}

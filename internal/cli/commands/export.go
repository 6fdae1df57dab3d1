package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/web"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all expenses as CSV",
		Example: `  # Write the export to a file
  expense-tracker export --file expenses.csv

  # Write to stdout
  expense-tracker export`,
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

			w := cmd.OutOrStdout()
			if outFile != "" {
				f, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outFile, err)
				}
				defer f.Close()
				w = f
			}

			if err := web.WriteExpensesCSV(w, expenses, cmdCtx.Cfg.Currency); err != nil {
				return err
			}

			if outFile != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d expenses to %s\n", len(expenses), outFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "file", "", "Output file (default: stdout)")

	return cmd
}

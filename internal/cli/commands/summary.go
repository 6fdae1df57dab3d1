package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show total spending and per-category breakdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			total, err := cmdCtx.Store.TotalAmount()
			if err != nil {
				return err
			}
			count, err := cmdCtx.Store.CountExpenses()
			if err != nil {
				return err
			}
			categories, err := cmdCtx.Store.CategoryTotals()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total spent: %s%.2f across %d expenses\n\n",
				cmdCtx.Cfg.Currency, total, count)
			renderCategoryTotals(out, categories, cmdCtx.Cfg.Currency)
			return nil
		},
	}

	return cmd
}

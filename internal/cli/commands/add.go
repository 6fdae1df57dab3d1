package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/store"
)

// NewAddCommand creates the add command.
func NewAddCommand() *cobra.Command {
	var (
		amount      float64
		category    string
		date        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Example: `  # Add an expense dated today
  expense-tracker add --amount 249.50 --category Food --description "lunch"

  # Add an expense for a specific date
  expense-tracker add --amount 1200 --category Rent --date 2024-06-01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			expense := &store.Expense{
				Amount:      amount,
				Category:    category,
				Description: description,
			}
			if date != "" {
				d, err := time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				expense.Date = d
			}

			if err := cmdCtx.Store.CreateExpense(expense); err != nil {
				return err
			}

			cmdCtx.Logger.Debug("expense created", "id", expense.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Added expense #%d: %s%.2f (%s)\n",
				expense.ID, cmdCtx.Cfg.Currency, expense.Amount, expense.Category)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Expense amount (required)")
	cmd.Flags().StringVar(&category, "category", "", "Expense category (required)")
	cmd.Flags().StringVar(&date, "date", "", "Expense date, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

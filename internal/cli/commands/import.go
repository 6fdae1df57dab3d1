package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/store"
)

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	var listBatches bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import expenses from a CSV file",
		Long: `Import expenses from a CSV file.

The file must have a header row with Date, Category and Amount columns
(Description is optional), the same layout the export command writes.
The import is atomic: either every row is inserted or none are, and each
import is recorded as a batch. Use --list-batches to show past imports.`,
		Example: `  # Re-import a previous export
  expense-tracker import expenses.csv

  # Show past imports
  expense-tracker import --list-batches`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listBatches {
				if len(args) > 0 {
					return fmt.Errorf("--list-batches takes no file argument")
				}
				return runListBatches(cmd)
			}
			if len(args) != 1 {
				return fmt.Errorf("requires a CSV file argument")
			}
			path := args[0]

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			expenses, err := parseExpensesCSV(f)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}
			if len(expenses) == 0 {
				return fmt.Errorf("%s contains no expense rows", path)
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			batch, err := cmdCtx.Store.ImportExpenses(filepath.Base(path), expenses)
			if err != nil {
				return err
			}

			cmdCtx.Logger.Debug("import complete", "batch", batch.ID, "rows", batch.RowCount)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses from %s (batch %s)\n",
				batch.RowCount, path, batch.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&listBatches, "list-batches", false, "List past import batches instead of importing")

	return cmd
}

// runListBatches prints every recorded import batch, newest first.
func runListBatches(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	batches, err := cmdCtx.Store.ListImportBatches()
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "(no import batches)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Batch", "Source", "Rows", "Imported"})
	for _, b := range batches {
		t.AppendRow(table.Row{b.ID, b.SourceFile, b.RowCount, b.CreatedAt.Format("2006-01-02 15:04")})
	}
	t.Render()
	return nil
}

// parseExpensesCSV reads the export CSV layout back into expenses.
// Columns are located by header name so column order doesn't matter;
// the amount header may carry a currency suffix, e.g. "Amount (₹)".
func parseExpensesCSV(r io.Reader) ([]*store.Expense, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header row: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		switch {
		case name == "date":
			cols["date"] = i
		case name == "category":
			cols["category"] = i
		case name == "description":
			cols["description"] = i
		case strings.HasPrefix(name, "amount"):
			cols["amount"] = i
		}
	}
	for _, required := range []string{"date", "category", "amount"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var expenses []*store.Expense
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		date, err := time.Parse(time.DateOnly, record[cols["date"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q", line, record[cols["date"]])
		}
		amount, err := strconv.ParseFloat(record[cols["amount"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q", line, record[cols["amount"]])
		}

		e := &store.Expense{
			Amount:   amount,
			Category: record[cols["category"]],
			Date:     date,
		}
		if i, ok := cols["description"]; ok {
			e.Description = record[i]
		}
		expenses = append(expenses, e)
	}

	return expenses, nil
}

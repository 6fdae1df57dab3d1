package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/store"
	"github.com/ProgrammerSahilG/Expense-tracker/internal/web"
)

// renderExpenses writes expenses in the requested format.
func renderExpenses(w io.Writer, expenses []*store.Expense, format, currency string) error {
	switch format {
	case "json":
		return renderExpensesJSON(w, expenses)
	case "csv":
		return web.WriteExpensesCSV(w, expenses, currency)
	default:
		renderExpensesTable(w, expenses, currency)
		return nil
	}
}

func renderExpensesTable(w io.Writer, expenses []*store.Expense, currency string) {
	if len(expenses) == 0 {
		_, _ = fmt.Fprintln(w, "(no expenses)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Date", "Category", "Description", "Amount"})

	for _, e := range expenses {
		t.AppendRow(table.Row{
			e.ID,
			e.Date.Format("2006-01-02"),
			e.Category,
			e.Description,
			currency + strconv.FormatFloat(e.Amount, 'f', 2, 64),
		})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d expenses)\n", len(expenses))
}

type expenseJSON struct {
	ID          int64   `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
}

func renderExpensesJSON(w io.Writer, expenses []*store.Expense) error {
	out := make([]expenseJSON, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, expenseJSON{
			ID:          e.ID,
			Amount:      e.Amount,
			Category:    e.Category,
			Date:        e.Date.Format(time.DateOnly),
			Description: e.Description,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// renderCategoryTotals writes per-category totals as a table.
func renderCategoryTotals(w io.Writer, totals []store.CategoryTotal, currency string) {
	if len(totals) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Category", "Total"})

	for _, ct := range totals {
		t.AppendRow(table.Row{ct.Category, currency + strconv.FormatFloat(ct.Total, 'f', 2, 64)})
	}

	t.Render()
}

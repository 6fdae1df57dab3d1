package web

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/store"
)

// WriteExpensesCSV writes expenses in the export layout:
// Date, Category, Description, Amount (<currency>).
func WriteExpensesCSV(w io.Writer, expenses []*store.Expense, currency string) error {
	cw := csv.NewWriter(w)

	header := []string{"Date", "Category", "Description", fmt.Sprintf("Amount (%s)", currency)}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range expenses {
		record := []string{
			e.Date.Format("2006-01-02"),
			e.Category,
			e.Description,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

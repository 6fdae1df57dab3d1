// Package store persists expenses in SQLite and exposes the queries the
// CLI and web UI need.
package store

import "time"

// Expense is a single recorded expense.
type Expense struct {
	ID          int64
	Amount      float64
	Category    string
	Date        time.Time
	Description string
}

// ImportBatch records one CSV import run.
type ImportBatch struct {
	ID         string
	SourceFile string
	RowCount   int
	CreatedAt  time.Time
}

// CategoryTotal is the summed amount for one category.
type CategoryTotal struct {
	Category string
	Total    float64
}

// MonthlyTotal is the summed amount for one calendar month (YYYY-MM).
type MonthlyTotal struct {
	Month string
	Total float64
}

// Store is the persistence interface used by the CLI and web layers.
type Store interface {
	CreateExpense(e *Expense) error
	GetExpense(id int64) (*Expense, error)
	DeleteExpense(id int64) error
	ListExpenses() ([]*Expense, error)
	RecentExpenses(limit int) ([]*Expense, error)
	TotalAmount() (float64, error)
	CountExpenses() (int, error)
	CategoryTotals() ([]CategoryTotal, error)
	MonthlyTotals() ([]MonthlyTotal, error)
	ImportExpenses(sourceFile string, expenses []*Expense) (*ImportBatch, error)
	ListImportBatches() ([]*ImportBatch, error)
	Close() error
}

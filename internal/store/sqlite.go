package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// ErrNotFound is returned when the requested expense does not exist.
var ErrNotFound = errors.New("expense not found")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the underlying connection for migrations and tests.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) ready() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	return nil
}

// --- Expense operations ---

// CreateExpense inserts a new expense and fills in its assigned ID.
// A zero Date defaults to the current time, matching the form behavior.
func (s *SQLiteStore) CreateExpense(e *Expense) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := validateExpense(e); err != nil {
		return err
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}

	res, err := s.db.Exec(
		`INSERT INTO expenses (amount, category, date, description) VALUES (?, ?, ?, ?)`,
		e.Amount, e.Category, e.Date.UTC(), e.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read expense id: %w", err)
	}
	e.ID = id
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(id int64) (*Expense, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	e := &Expense{}
	var desc sql.NullString
	err := s.db.QueryRow(
		`SELECT id, amount, category, date, description FROM expenses WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.Amount, &e.Category, &e.Date, &desc)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	e.Description = desc.String
	return e, nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(id int64) error {
	if err := s.ready(); err != nil {
		return err
	}

	res, err := s.db.Exec(`DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// ListExpenses returns all expenses ordered by date, newest first.
func (s *SQLiteStore) ListExpenses() ([]*Expense, error) {
	return s.queryExpenses(`SELECT id, amount, category, date, description FROM expenses ORDER BY date DESC, id DESC`)
}

// RecentExpenses returns the most recent expenses, up to limit.
func (s *SQLiteStore) RecentExpenses(limit int) ([]*Expense, error) {
	return s.queryExpenses(
		`SELECT id, amount, category, date, description FROM expenses ORDER BY date DESC, id DESC LIMIT ?`,
		limit,
	)
}

func (s *SQLiteStore) queryExpenses(query string, args ...any) ([]*Expense, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		var desc sql.NullString
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &e.Date, &desc); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Description = desc.String
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// TotalAmount returns the sum of all expense amounts, 0 when empty.
func (s *SQLiteStore) TotalAmount() (float64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}

	var total sql.NullFloat64
	if err := s.db.QueryRow(`SELECT SUM(amount) FROM expenses`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total.Float64, nil
}

// CountExpenses returns the number of recorded expenses.
func (s *SQLiteStore) CountExpenses() (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM expenses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

// CategoryTotals returns summed amounts per category, largest first.
func (s *SQLiteStore) CategoryTotals() ([]CategoryTotal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT category, SUM(amount) FROM expenses GROUP BY category ORDER BY SUM(amount) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category totals: %w", err)
	}
	return totals, nil
}

// MonthlyTotals returns summed amounts per calendar month (YYYY-MM),
// oldest first.
func (s *SQLiteStore) MonthlyTotals() ([]MonthlyTotal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT strftime('%Y-%m', date) AS month, SUM(amount)
		 FROM expenses GROUP BY month ORDER BY month ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer rows.Close()

	var totals []MonthlyTotal
	for rows.Next() {
		var mt MonthlyTotal
		if err := rows.Scan(&mt.Month, &mt.Total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly totals: %w", err)
	}
	return totals, nil
}

// --- Import operations ---

// ImportExpenses inserts a batch of expenses from a CSV import inside a
// single transaction and records the batch. Either every row lands or
// none do.
func (s *SQLiteStore) ImportExpenses(sourceFile string, expenses []*Expense) (*ImportBatch, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	for i, e := range expenses {
		if err := validateExpense(e); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	batch := &ImportBatch{
		ID:         uuid.New().String(),
		SourceFile: sourceFile,
		RowCount:   len(expenses),
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := tx.Exec(
		`INSERT INTO import_batches (id, source_file, row_count, created_at) VALUES (?, ?, ?, ?)`,
		batch.ID, batch.SourceFile, batch.RowCount, batch.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to record import batch: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO expenses (amount, category, date, description, import_batch_id) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare import: %w", err)
	}
	defer stmt.Close()

	for _, e := range expenses {
		date := e.Date
		if date.IsZero() {
			date = time.Now().UTC()
		}
		res, err := stmt.Exec(e.Amount, e.Category, date.UTC(), e.Description, batch.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to import expense: %w", err)
		}
		if id, err := res.LastInsertId(); err == nil {
			e.ID = id
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}
	return batch, nil
}

// ListImportBatches returns all import batches, newest first.
func (s *SQLiteStore) ListImportBatches() ([]*ImportBatch, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT id, source_file, row_count, created_at FROM import_batches ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query import batches: %w", err)
	}
	defer rows.Close()

	var batches []*ImportBatch
	for rows.Next() {
		b := &ImportBatch{}
		if err := rows.Scan(&b.ID, &b.SourceFile, &b.RowCount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate import batches: %w", err)
	}
	return batches, nil
}

func validateExpense(e *Expense) error {
	if e.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", e.Amount)
	}
	category := strings.TrimSpace(e.Category)
	if category == "" {
		return fmt.Errorf("category is required")
	}
	if len(category) > 50 {
		return fmt.Errorf("category exceeds 50 characters")
	}
	if len(e.Description) > 200 {
		return fmt.Errorf("description exceeds 200 characters")
	}
	e.Category = category
	return nil
}

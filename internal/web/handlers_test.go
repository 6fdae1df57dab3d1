package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/store"
)

func newTestApp(t *testing.T) (*store.SQLiteStore, http.Handler) {
	t.Helper()

	s := store.NewSQLiteStore()
	require.NoError(t, s.Open(":memory:"))
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate())

	sessionStore := sessions.NewCookieStore([]byte("test-secret"))
	handlers := NewHandlers(s, sessionStore, NewViews("₹"), "₹", nil)

	r := chi.NewMux()
	handlers.Routes(r)
	return s, r
}

func addExpense(t *testing.T, s *store.SQLiteStore, amount float64, category string, date time.Time, desc string) *store.Expense {
	t.Helper()
	e := &store.Expense{Amount: amount, Category: category, Date: date, Description: desc}
	require.NoError(t, s.CreateExpense(e))
	return e
}

func TestIndex(t *testing.T) {
	s, app := newTestApp(t)
	addExpense(t, s, 120.50, "Food", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "groceries")
	addExpense(t, s, 80, "Transport", time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), "")

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "₹200.50")
	assert.Contains(t, body, "groceries")
	assert.Contains(t, body, "Expenses recorded")
}

func TestAddForm(t *testing.T) {
	_, app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/add", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="amount"`)
	assert.Contains(t, rec.Body.String(), `name="category"`)
}

func postForm(app http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestAddSubmit(t *testing.T) {
	s, app := newTestApp(t)

	rec := postForm(app, "/add", url.Values{
		"amount":      {"49.99"},
		"category":    {"Shopping"},
		"date":        {"2024-06-10"},
		"description": {"headphones"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	expenses, err := s.ListExpenses()
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, 49.99, expenses[0].Amount)
	assert.Equal(t, "Shopping", expenses[0].Category)
	assert.Equal(t, "headphones", expenses[0].Description)
}

func TestAddSubmit_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"non-numeric amount", url.Values{"amount": {"abc"}, "category": {"Food"}}},
		{"bad date", url.Values{"amount": {"10"}, "category": {"Food"}, "date": {"10-06-2024"}}},
		{"missing category", url.Values{"amount": {"10"}}},
		{"negative amount", url.Values{"amount": {"-3"}, "category": {"Food"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, app := newTestApp(t)

			rec := postForm(app, "/add", tt.form)

			// Validation failures return to the form with a flash.
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/add", rec.Header().Get("Location"))

			count, err := s.CountExpenses()
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}

func TestExpensesList(t *testing.T) {
	s, app := newTestApp(t)
	addExpense(t, s, 15, "Food", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "coffee")

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expenses", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "coffee")
	assert.Contains(t, rec.Body.String(), "2024-04-01")
}

func TestDelete(t *testing.T) {
	s, app := newTestApp(t)
	e := addExpense(t, s, 30, "Bills", time.Now().UTC(), "")

	rec := postForm(app, "/delete/"+strconv.FormatInt(e.ID, 10), nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/expenses", rec.Header().Get("Location"))

	count, err := s.CountExpenses()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDelete_NotFound(t *testing.T) {
	_, app := newTestApp(t)

	rec := postForm(app, "/delete/12345", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_InvalidID(t *testing.T) {
	_, app := newTestApp(t)

	rec := postForm(app, "/delete/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboard(t *testing.T) {
	s, app := newTestApp(t)
	addExpense(t, s, 100, "Food", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "")
	addExpense(t, s, 200, "Rent", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "")

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, "Rent")
	assert.Contains(t, body, "2024-01")
}

func TestDashboard_Empty(t *testing.T) {
	_, app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nothing to chart yet")
}

func TestExportCSV(t *testing.T) {
	s, app := newTestApp(t)
	addExpense(t, s, 42.5, "Food", time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), "dinner")

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "expenses.csv")

	body := rec.Body.String()
	assert.Contains(t, body, "Date,Category,Description,Amount (₹)")
	assert.Contains(t, body, "2024-03-03,Food,dinner,42.50")
}

func TestHealthz(t *testing.T) {
	_, app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestFlashShownOnce(t *testing.T) {
	_, app := newTestApp(t)

	rec := postForm(app, "/add", url.Values{
		"amount":   {"10"},
		"category": {"Food"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	cookie := rec.Header().Get("Set-Cookie")
	require.NotEmpty(t, cookie)

	// First page view shows the flash.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", cookie)
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "Expense added successfully!")

	// The session cookie rewritten by the flash drain no longer has it.
	if updated := rec.Header().Get("Set-Cookie"); updated != "" {
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", updated)
		rec = httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		assert.NotContains(t, rec.Body.String(), "Expense added successfully!")
	}
}


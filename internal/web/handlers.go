package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/store"
)

// Handlers provides the HTTP handlers for the expense tracker UI.
type Handlers struct {
	store        store.Store
	sessionStore sessions.Store
	views        *Views
	currency     string
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st store.Store, sessionStore sessions.Store, views *Views, currency string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		store:        st,
		sessionStore: sessionStore,
		views:        views,
		currency:     currency,
		logger:       logger,
	}
}

// Routes registers all UI routes on the router.
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/add", h.AddForm)
	r.Post("/add", h.AddSubmit)
	r.Get("/expenses", h.Expenses)
	r.Post("/delete/{id}", h.Delete)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/export/csv", h.ExportCSV)
	r.Get("/healthz", h.Healthz)
}

type page struct {
	Title   string
	Flashes []Flash
}

type indexData struct {
	page
	Total  float64
	Count  int
	Recent []*store.Expense
}

// Index renders the summary page: total spent, expense count and the
// five most recent expenses.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	total, err := h.store.TotalAmount()
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	count, err := h.store.CountExpenses()
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	recent, err := h.store.RecentExpenses(5)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "index", &indexData{
		page:   page{Title: "Overview", Flashes: popFlashes(h.sessionStore, w, r)},
		Total:  total,
		Count:  count,
		Recent: recent,
	})
}

type addFormData struct {
	page
	Today      string
	Categories []string
}

// defaultCategories seed the category dropdown on the add form.
var defaultCategories = []string{
	"Food", "Transport", "Shopping", "Bills", "Entertainment", "Health", "Other",
}

// AddForm renders the new-expense form.
func (h *Handlers) AddForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "add", &addFormData{
		page:       page{Title: "Add Expense", Flashes: popFlashes(h.sessionStore, w, r)},
		Today:      time.Now().Format("2006-01-02"),
		Categories: defaultCategories,
	})
}

// AddSubmit validates the form and creates the expense. Invalid input
// flashes an error and returns to the form; success redirects home.
func (h *Handlers) AddSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	expense, err := parseExpenseForm(r)
	if err != nil {
		addFlash(h.sessionStore, w, r, "error", err.Error())
		http.Redirect(w, r, "/add", http.StatusSeeOther)
		return
	}

	if err := h.store.CreateExpense(expense); err != nil {
		addFlash(h.sessionStore, w, r, "error", err.Error())
		http.Redirect(w, r, "/add", http.StatusSeeOther)
		return
	}

	h.logger.Info("expense added", "id", expense.ID, "amount", expense.Amount, "category", expense.Category)
	addFlash(h.sessionStore, w, r, "success", "Expense added successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func parseExpenseForm(r *http.Request) (*store.Expense, error) {
	amount, err := strconv.ParseFloat(r.PostFormValue("amount"), 64)
	if err != nil {
		return nil, fmt.Errorf("amount must be a number")
	}

	date := time.Now()
	if v := r.PostFormValue("date"); v != "" {
		date, err = time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("date must be YYYY-MM-DD")
		}
	}

	return &store.Expense{
		Amount:      amount,
		Category:    r.PostFormValue("category"),
		Date:        date,
		Description: r.PostFormValue("description"),
	}, nil
}

type expensesData struct {
	page
	Expenses []*store.Expense
}

// Expenses renders the full expense list, newest first.
func (h *Handlers) Expenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.store.ListExpenses()
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "expenses", &expensesData{
		page:     page{Title: "All Expenses", Flashes: popFlashes(h.sessionStore, w, r)},
		Expenses: expenses,
	})
}

// Delete removes an expense and redirects back to the list.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid expense id", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteExpense(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.logger.Info("expense deleted", "id", id)
	addFlash(h.sessionStore, w, r, "success", "Expense deleted successfully!")
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

type dashboardData struct {
	page
	Categories    []store.CategoryTotal
	CategoryChart template.HTML
	MonthlyChart  template.HTML
}

// Dashboard renders the analytics page: category breakdown and monthly
// spending trend as inline SVG charts.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.CategoryTotals()
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	monthly, err := h.store.MonthlyTotals()
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "dashboard", &dashboardData{
		page:          page{Title: "Dashboard", Flashes: popFlashes(h.sessionStore, w, r)},
		Categories:    categories,
		CategoryChart: pieChartSVG(categories),
		MonthlyChart:  lineChartSVG(monthly),
	})
}

// ExportCSV streams all expenses as a CSV attachment.
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.store.ListExpenses()
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)

	if err := WriteExpensesCSV(w, expenses, h.currency); err != nil {
		h.logger.Error("csv export failed", "error", err)
	}
}

// Healthz is a liveness probe.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, pageName string, data any) {
	if err := h.views.Render(w, pageName, data); err != nil {
		h.serverError(w, r, err)
	}
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

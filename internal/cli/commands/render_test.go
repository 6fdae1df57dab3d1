package commands

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/store"
)

func sampleExpenses() []*store.Expense {
	return []*store.Expense{
		{ID: 1, Amount: 99.90, Category: "Food", Description: "lunch",
			Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Amount: 1200, Category: "Rent",
			Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
	}
}

func TestRenderExpenses_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderExpenses(&buf, sampleExpenses(), "table", "₹"))

	out := buf.String()
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "₹99.90")
	assert.Contains(t, out, "(2 expenses)")
}

func TestRenderExpenses_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderExpenses(&buf, nil, "table", "₹"))
	assert.Contains(t, buf.String(), "(no expenses)")
}

func TestRenderExpenses_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderExpenses(&buf, sampleExpenses(), "json", "₹"))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Food", out[0]["category"])
	assert.Equal(t, "2024-06-01", out[0]["date"])
	// Empty description is omitted.
	_, hasDesc := out[1]["description"]
	assert.False(t, hasDesc)
}

func TestRenderExpenses_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderExpenses(&buf, sampleExpenses(), "csv", "$"))

	out := buf.String()
	assert.Contains(t, out, "Date,Category,Description,Amount ($)")
	assert.Contains(t, out, "2024-06-02,Rent,,1200.00")
}

func TestRenderCategoryTotals(t *testing.T) {
	var buf bytes.Buffer
	renderCategoryTotals(&buf, []store.CategoryTotal{
		{Category: "Rent", Total: 1200},
		{Category: "Food", Total: 99.9},
	}, "₹")

	out := buf.String()
	assert.Contains(t, out, "Rent")
	assert.Contains(t, out, "₹1200.00")
}

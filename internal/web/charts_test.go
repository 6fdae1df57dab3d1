package web

import (
	"strings"
	"testing"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/store"
)

func TestPieChartSVG(t *testing.T) {
	svg := string(pieChartSVG([]store.CategoryTotal{
		{Category: "Food", Total: 75},
		{Category: "Rent", Total: 25},
	}))

	if !strings.Contains(svg, "<svg") {
		t.Fatal("expected svg output")
	}
	if !strings.Contains(svg, "Food (75.0%)") {
		t.Errorf("expected Food share in legend, got %s", svg)
	}
	if !strings.Contains(svg, "Rent (25.0%)") {
		t.Errorf("expected Rent share in legend, got %s", svg)
	}
}

func TestPieChartSVG_SingleCategory(t *testing.T) {
	svg := string(pieChartSVG([]store.CategoryTotal{{Category: "Food", Total: 10}}))

	// A single category is a full circle, not a degenerate arc.
	if !strings.Contains(svg, "<circle") {
		t.Errorf("expected full circle for single category, got %s", svg)
	}
}

func TestPieChartSVG_Empty(t *testing.T) {
	if svg := pieChartSVG(nil); svg != "" {
		t.Errorf("expected empty output, got %s", svg)
	}
}

func TestPieChartSVG_EscapesCategory(t *testing.T) {
	svg := string(pieChartSVG([]store.CategoryTotal{{Category: "<script>", Total: 10}}))

	if strings.Contains(svg, "<script>") {
		t.Error("category name not escaped")
	}
}

func TestLineChartSVG(t *testing.T) {
	svg := string(lineChartSVG([]store.MonthlyTotal{
		{Month: "2024-01", Total: 100},
		{Month: "2024-02", Total: 250},
	}))

	if !strings.Contains(svg, "<polyline") {
		t.Fatal("expected polyline in trend chart")
	}
	if !strings.Contains(svg, "2024-01") || !strings.Contains(svg, "2024-02") {
		t.Errorf("expected month labels, got %s", svg)
	}
}

func TestLineChartSVG_Empty(t *testing.T) {
	if svg := lineChartSVG(nil); svg != "" {
		t.Errorf("expected empty output, got %s", svg)
	}
}

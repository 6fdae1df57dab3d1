package web

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/ProgrammerSahilG/Expense-tracker/internal/store"
)

// chartPalette cycles through category slice and legend colors.
var chartPalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// pieChartSVG renders a category breakdown as an inline SVG pie chart
// with a legend. Returns empty HTML when there is nothing to plot.
func pieChartSVG(totals []store.CategoryTotal) template.HTML {
	var sum float64
	for _, ct := range totals {
		sum += ct.Total
	}
	if sum <= 0 {
		return ""
	}

	const (
		size   = 320.0
		cx     = 160.0
		cy     = 160.0
		radius = 140.0
	)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f" role="img">`,
		size+220, size, size+220, size)

	angle := -math.Pi / 2 // start at twelve o'clock
	for i, ct := range totals {
		share := ct.Total / sum
		color := chartPalette[i%len(chartPalette)]

		if len(totals) == 1 {
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`, cx, cy, radius, color)
		} else {
			end := angle + share*2*math.Pi
			x1, y1 := cx+radius*math.Cos(angle), cy+radius*math.Sin(angle)
			x2, y2 := cx+radius*math.Cos(end), cy+radius*math.Sin(end)
			largeArc := 0
			if share > 0.5 {
				largeArc = 1
			}
			fmt.Fprintf(&b,
				`<path d="M%.1f,%.1f L%.1f,%.1f A%.1f,%.1f 0 %d 1 %.1f,%.1f Z" fill="%s"/>`,
				cx, cy, x1, y1, radius, radius, largeArc, x2, y2, color)
			angle = end
		}

		// Legend
		ly := 24.0 + float64(i)*22
		fmt.Fprintf(&b, `<rect x="%.0f" y="%.1f" width="14" height="14" fill="%s"/>`, size+16, ly, color)
		fmt.Fprintf(&b, `<text x="%.0f" y="%.1f" font-size="13">%s (%.1f%%)</text>`,
			size+36, ly+12, template.HTMLEscapeString(ct.Category), share*100)
	}

	b.WriteString(`</svg>`)
	return template.HTML(b.String()) //nolint:gosec // G203: values are escaped or numeric
}

// lineChartSVG renders a monthly spending trend as an inline SVG line
// chart. Returns empty HTML when there is nothing to plot.
func lineChartSVG(totals []store.MonthlyTotal) template.HTML {
	if len(totals) == 0 {
		return ""
	}

	const (
		width   = 560.0
		height  = 280.0
		padLeft = 60.0
		padBot  = 40.0
		padTop  = 20.0
	)

	var maxVal float64
	for _, mt := range totals {
		if mt.Total > maxVal {
			maxVal = mt.Total
		}
	}
	if maxVal <= 0 {
		return ""
	}

	plotW := width - padLeft - 20
	plotH := height - padTop - padBot

	x := func(i int) float64 {
		if len(totals) == 1 {
			return padLeft + plotW/2
		}
		return padLeft + plotW*float64(i)/float64(len(totals)-1)
	}
	y := func(v float64) float64 {
		return padTop + plotH*(1-v/maxVal)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f" role="img">`,
		width, height, width, height)

	// Axes
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888"/>`,
		padLeft, padTop, padLeft, padTop+plotH)
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888"/>`,
		padLeft, padTop+plotH, padLeft+plotW, padTop+plotH)

	// Polyline
	var points []string
	for i, mt := range totals {
		points = append(points, fmt.Sprintf("%.1f,%.1f", x(i), y(mt.Total)))
	}
	fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`,
		strings.Join(points, " "), chartPalette[0])

	// Markers and month labels
	for i, mt := range totals {
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="3.5" fill="%s"/>`, x(i), y(mt.Total), chartPalette[0])
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="11" text-anchor="middle">%s</text>`,
			x(i), height-14, template.HTMLEscapeString(mt.Month))
	}

	// Max value label
	fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="11" text-anchor="end">%.0f</text>`,
		padLeft-6, padTop+10, maxVal)

	b.WriteString(`</svg>`)
	return template.HTML(b.String()) //nolint:gosec // G203: values are escaped or numeric
}

package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a simple column-aligned terminal table.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Render draws the table with padded columns and styled headers.
func (t Table) Render() string {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(TitleStyle.Render(t.Title))
		b.WriteString("\n")
	}

	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(HeaderStyle.Render(pad(c, widths[i])))
	}
	b.WriteString("\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			if i < len(widths) {
				cell = pad(cell, widths[i])
			}
			b.WriteString(CellStyle.Render(cell))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// FormatFloat renders a value with two decimals, or a dash for NaN and
// infinities so missing aggregates do not masquerade as numbers.
func FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", v)
}

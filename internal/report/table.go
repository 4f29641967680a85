package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"crossbench/internal/benchmark"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	overallStyle = cellStyle.Bold(true)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")) // Purple-ish
)

// Headers returns the column titles of the comparison table.
func Headers(labelA, labelB string) []string {
	return []string{
		"Operation",
		labelA + " Time (s)",
		labelB + " Time (s)",
		"Speed Comparison",
		labelA + " Memory (KB)",
		labelB + " Memory (KB)",
		"Memory Comparison",
	}
}

// Cells formats one comparison row for display.
func Cells(r benchmark.Row) []string {
	return []string{
		r.Operation,
		fmt.Sprintf("%.3f", r.TimeA),
		fmt.Sprintf("%.3f", r.TimeB),
		r.SpeedVerdict,
		fmt.Sprintf("%.2f", r.MemoryA),
		fmt.Sprintf("%.2f", r.MemoryB),
		r.MemoryVerdict,
	}
}

// RenderTable draws the per-operation rows followed by the Overall row.
func RenderTable(c *benchmark.Comparison) string {
	rows := c.Table()
	overall := len(rows) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(Headers(c.LabelA, c.LabelB)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == overall:
				return overallStyle
			default:
				return cellStyle
			}
		})

	for _, r := range rows {
		t.Row(Cells(r)...)
	}
	return t.String()
}

// WriteSummary prints the verdicts of the Overall row.
func WriteSummary(w io.Writer, c *benchmark.Comparison) {
	fmt.Fprintln(w, "\nOverall Performance Summary:")
	fmt.Fprintf(w, "Speed: %s\n", c.Overall.SpeedVerdict)
	fmt.Fprintf(w, "Memory: %s\n", c.Overall.MemoryVerdict)
}

package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured on visible cells so styled values line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = StyleHeader.Render(h)
	}
	writeRow(&b, styled, widths)

	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeRow(&b, seps, widths)

	for _, row := range rows {
		writeRow(&b, row, widths)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	last := len(widths) - 1
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if i < last {
			b.WriteString(strings.Repeat(" ", max(widths[i]-lipgloss.Width(cell), 0)+colGap))
		}
	}
	b.WriteString("\n")
}

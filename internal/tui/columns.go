package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AlignColumns renders rows with every column but the last padded to its
// widest cell. Widths are visual, so cells may already carry ANSI styling.
// indent is prepended to every line and gap spaces separate columns.
func AlignColumns(rows [][]string, indent string, gap int) string {
	if len(rows) == 0 {
		return ""
	}

	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	gapStr := strings.Repeat(" ", gap)
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(indent)
		for i, cell := range row {
			sb.WriteString(cell)
			if i == len(row)-1 {
				break
			}
			sb.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
			sb.WriteString(gapStr)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

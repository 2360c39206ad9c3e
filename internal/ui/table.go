package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/srvmon/internal/present"
)

// Column widths in cells, in present.Columns order.
var columnWidths = [4]int{30, 20, 30, present.BarWidth + 2}

func columns() []table.Column {
	cols := make([]table.Column, len(present.Columns))
	for i, title := range present.Columns {
		cols[i] = table.Column{Title: title, Width: columnWidths[i]}
	}
	return cols
}

func tableRows(rows []present.Row) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row(r.Cells())
	}
	return out
}

// newTable builds the metrics table. height counts the header line.
func newTable(rows []present.Row, height int, focused bool) table.Model {
	t := table.New(
		table.WithColumns(columns()),
		table.WithRows(tableRows(rows)),
		table.WithFocused(focused),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(colorLabel)
	s.Selected = s.Selected.
		Foreground(colorAccent).
		Bold(false)
	if !focused {
		s.Selected = lipgloss.NewStyle()
	}
	t.SetStyles(s)
	return t
}

// headerLines is the table header height including its bottom border.
const headerLines = 2

// renderTable renders a static table holding every row.
func renderTable(rows []present.Row) string {
	return newTable(rows, len(rows)+headerLines+1, false).View()
}

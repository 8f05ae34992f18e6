package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders borderless, left-aligned columns. Cell widths are measured
// with lipgloss so styled cells line up.
type Table struct {
	rows      [][]string
	colWidths []int
	padding   int
}

// NewTable returns a table with cols columns.
func NewTable(cols int) *Table {
	return &Table{colWidths: make([]int, cols), padding: 2}
}

// AddRow appends a row; extra cells are dropped, missing cells are blank.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.colWidths))
	for i := 0; i < len(row) && i < len(cells); i++ {
		row[i] = cells[i]
		if w := lipgloss.Width(cells[i]); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table with one trailing newline per row.
func (t *Table) String() string {
	var sb strings.Builder
	gap := strings.Repeat(" ", t.padding)
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(gap)
			}
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", t.colWidths[i]-lipgloss.Width(cell)))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

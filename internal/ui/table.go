package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	tableCellMaxWidth = 50
	tableCellEllipsis = "..."
	tableGutter       = 2
)

// Table collects rows and renders them as aligned columns.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable returns a table with room for capacity rows.
func NewTable(headers []string, capacity int) *Table {
	return &Table{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (t *Table) AddRow(row ...string) {
	t.rows = append(t.rows, row)
}

// Len returns the number of rows added so far.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table.
func (t *Table) String() string {
	return FormatTable(t.headers, t.rows)
}

// FormatTable renders headers and rows as left-aligned columns separated by
// two spaces. Widths are measured on visible characters, so cells may carry
// ANSI styling. The last column is never padded.
func FormatTable(headers []string, rows [][]string) string {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, normalizeRow(headers))
	for _, row := range rows {
		all = append(all, normalizeRow(row))
	}

	widths := make([]int, len(headers))
	for _, row := range all {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var b strings.Builder
	for _, row := range all {
		for i, cell := range row {
			b.WriteString(cell)
			if i == len(row)-1 {
				break
			}
			pad := tableGutter
			if i < len(widths) {
				pad += widths[i] - lipgloss.Width(cell)
			}
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// TruncateCell flattens line breaks and limits value to the maximum cell
// width, ending truncated values with an ellipsis.
func TruncateCell(value string) string {
	value = normalizeCell(value)
	if lipgloss.Width(value) <= tableCellMaxWidth {
		return value
	}
	return truncate.StringWithTail(value, tableCellMaxWidth, tableCellEllipsis)
}

func normalizeRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = normalizeCell(cell)
	}
	return out
}

var cellReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func normalizeCell(value string) string {
	return cellReplacer.Replace(value)
}

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a simple styled table renderer.
type Table struct {
	headers  []string
	rows     [][]string
	widths   []int
	maxWidth int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = visualLen(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
	}
}

// SetMaxWidth caps the rendered width of each row. The last column is
// truncated to fit; zero disables the cap.
func (t *Table) SetMaxWidth(width int) {
	t.maxWidth = width
}

// AddRow adds a row of values to the table. The number of values should
// match the number of headers.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(values) {
			row[i] = values[i]
		}
		if n := visualLen(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render returns the formatted table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := t.columnWidths()
	var sb strings.Builder

	// Header row.
	for i, h := range t.headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleHeader.Render(pad(truncate(h, widths[i]), widths[i])))
	}
	sb.WriteString("\n")

	// Separator.
	for i, w := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleMuted.Render(strings.Repeat("─", w)))
	}
	sb.WriteString("\n")

	// Data rows.
	last := len(widths) - 1
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			cell = truncate(cell, widths[i])
			if i == last {
				sb.WriteString(cell)
				continue
			}
			sb.WriteString(pad(cell, widths[i]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// columnWidths shrinks the last column so a row fits within maxWidth.
func (t *Table) columnWidths() []int {
	widths := append([]int(nil), t.widths...)
	if t.maxWidth <= 0 {
		return widths
	}
	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	if over := total - t.maxWidth; over > 0 {
		last := len(widths) - 1
		widths[last] = max(widths[last]-over, 1)
	}
	return widths
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Fprint writes the table to w.
func (t *Table) Fprint(w io.Writer) {
	fmt.Fprint(w, t.Render())
}

// visualLen returns the printable width of s, ignoring ANSI escapes.
func visualLen(s string) int {
	return lipgloss.Width(s)
}

// pad right-pads a string to the given visual width.
func pad(s string, width int) string {
	n := visualLen(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// truncate shortens plain text to width runes, marking the cut with "…".
func truncate(s string, width int) string {
	if width <= 0 || visualLen(s) <= width {
		return s
	}
	runes := []rune(s)
	if width == 1 || len(runes) <= 1 {
		return "…"
	}
	if len(runes) > width-1 {
		runes = runes[:width-1]
	}
	return string(runes) + "…"
}

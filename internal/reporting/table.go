package reporting

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// table is a simple grid whose first column is left-aligned and the rest
// right-aligned.
type table struct {
	header []string
	rows   [][]string
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	w := make([]int, len(t.header))
	for i, h := range t.header {
		w[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(w) {
				w[i] = max(w[i], runewidth.StringWidth(cell))
			}
		}
	}
	return w
}

// text renders the table for a terminal, indented by indent.
func (t *table) text(indent string) string {
	w := t.widths()
	var b strings.Builder
	line := func(cells []string) {
		b.WriteString(indent)
		for i := range t.header {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i > 0 {
				b.WriteString("  ")
				b.WriteString(padLeft(cell, w[i]))
			} else {
				b.WriteString(padRight(cell, w[i]))
			}
		}
		b.WriteString("\n")
	}
	line(t.header)
	sep := make([]string, len(w))
	for i, n := range w {
		sep[i] = strings.Repeat("-", n)
	}
	line(sep)
	for _, row := range t.rows {
		line(row)
	}
	return b.String()
}

// markdown renders the table as a GitHub-flavored markdown table.
func (t *table) markdown() string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(t.header, " | ") + " |\n")
	b.WriteString("|")
	for i := range t.header {
		if i == 0 {
			b.WriteString(" --- |")
		} else {
			b.WriteString(" ---: |")
		}
	}
	b.WriteString("\n")
	for _, row := range t.rows {
		cells := make([]string, len(t.header))
		for i := range cells {
			if i < len(row) {
				cells[i] = strings.ReplaceAll(row[i], "|", `\|`)
			}
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func padLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return strings.Repeat(" ", width-sw) + s
}

package table

import (
	"strings"
	"unicode/utf8"
)

// RenderConsole formats the table as an aligned text block for stdout.
// Columns are right-aligned and separated by a single space.
func (t *Table) RenderConsole() string {
	return t.renderRows(len(t.rows))
}

// Head formats the first n rows as an aligned text block
func (t *Table) Head(n int) string {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return t.renderRows(n)
}

func (t *Table) renderRows(n int) string {
	widths := make([]int, len(t.cols))
	for i, c := range t.cols {
		widths[i] = utf8.RuneCountInString(c)
	}
	for r := 0; r < n; r++ {
		for i := range t.cols {
			if w := utf8.RuneCountInString(t.rows[r][i].Render()); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, c := range t.cols {
		if i > 0 {
			b.WriteByte(' ')
		}
		pad(&b, c, widths[i])
	}
	b.WriteByte('\n')
	for r := 0; r < n; r++ {
		for i := range t.cols {
			if i > 0 {
				b.WriteByte(' ')
			}
			pad(&b, t.rows[r][i].Render(), widths[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func pad(b *strings.Builder, s string, width int) {
	for n := utf8.RuneCountInString(s); n < width; n++ {
		b.WriteByte(' ')
	}
	b.WriteString(s)
}

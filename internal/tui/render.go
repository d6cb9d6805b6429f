package tui

import (
	"strings"

	"github.com/pders01/homily/internal/listing"
)

// visibleRange returns the half-open window of n rows that fits in height
// and keeps cursor on screen. The window only scrolls once the cursor moves
// past the first page.
func visibleRange(n, cursor, height int) (int, int) {
	end := min(max(cursor+1, height), n)
	start := 0
	if end > height {
		start = end - height
	}
	return start, end
}

// paintList renders rows into exactly height lines of width cells.
func (s Styles) paintList(rows []listing.Row, cursor, width, height int) string {
	if height <= 0 {
		return ""
	}
	start, end := visibleRange(len(rows), cursor, height)

	lines := make([]string, 0, height)
	for i := start; i < end; i++ {
		lines = append(lines, s.paintRow(rows[i], i == cursor, width))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", max(width, 0)))
	}
	return strings.Join(lines, "\n")
}

func (s Styles) paintRow(row listing.Row, selected bool, width int) string {
	style := s.Normal
	if row.Style == listing.StyleEmphasized {
		style = s.Emphasized
	}
	if selected {
		style = s.Selected.Bold(row.Style == listing.StyleEmphasized)
	}
	text := strings.ReplaceAll(row.Text, "\n", " ")
	return style.Render(padRight(truncateEnd(text, width), width))
}

func (s Styles) paintStatus(text string, width int) string {
	return s.Status.Render(padRight(truncateEnd(text, width), width))
}

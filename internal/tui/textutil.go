package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncateEnd shortens s to at most limit cells, ending in an ellipsis when
// something was cut.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	return ansi.Truncate(s, limit, "…")
}

// padRight fills s with spaces up to width cells.
func padRight(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

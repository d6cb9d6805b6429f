package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/homily/internal/config"
	"github.com/pders01/homily/internal/listing"
)

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name               string
		n, cursor, height  int
		wantStart, wantEnd int
	}{
		{"fits", 3, 2, 10, 0, 3},
		{"cursor on first page", 30, 5, 10, 0, 10},
		{"cursor on last visible row", 30, 9, 10, 0, 10},
		{"scrolls one past", 30, 10, 10, 1, 11},
		{"cursor at end", 30, 29, 10, 20, 30},
		{"empty", 0, 0, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := visibleRange(tt.n, tt.cursor, tt.height)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func numberedRows(n int) []listing.Row {
	rows := make([]listing.Row, n)
	for i := range rows {
		rows[i] = listing.Row{Text: fmt.Sprintf("row %02d", i)}
	}
	return rows
}

func TestPaintListKeepsCursorVisible(t *testing.T) {
	s := NewStyles(config.TestConfig().UI.Colors)

	out := ansi.Strip(s.paintList(numberedRows(30), 25, 12, 10))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 10)
	assert.Equal(t, "row 16", strings.TrimSpace(lines[0]))
	assert.Equal(t, "row 25", strings.TrimSpace(lines[9]))
}

func TestPaintListPadsShortLists(t *testing.T) {
	s := NewStyles(config.TestConfig().UI.Colors)

	lines := strings.Split(ansi.Strip(s.paintList(numberedRows(2), 0, 8, 4)), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, 8, ansi.StringWidth(line))
	}
	assert.Equal(t, "", strings.TrimSpace(lines[3]))
}

func TestPaintRowTruncates(t *testing.T) {
	s := NewStyles(config.TestConfig().UI.Colors)

	row := listing.Row{Text: "a rather long episode title\nwith a newline", Style: listing.StyleEmphasized}
	out := ansi.Strip(s.paintRow(row, true, 10))

	assert.Equal(t, 10, ansi.StringWidth(out))
	assert.True(t, strings.HasSuffix(out, "…"))
	assert.NotContains(t, out, "\n")
}

func TestPaintStatus(t *testing.T) {
	s := NewStyles(config.TestConfig().UI.Colors)

	assert.Equal(t, "ok        ", ansi.Strip(s.paintStatus("ok", 10)))
	assert.Equal(t, "", ansi.Strip(s.paintStatus("anything", 0)))
}

func TestPaintListZeroHeight(t *testing.T) {
	s := NewStyles(config.TestConfig().UI.Colors)
	assert.Equal(t, "", s.paintList(numberedRows(3), 0, 10, 0))
}

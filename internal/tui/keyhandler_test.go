package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/pders01/homily/internal/app"
	"github.com/pders01/homily/internal/config"
)

func TestKeyHandler_DefaultBindings(t *testing.T) {
	kh := NewKeyHandler(config.TestConfig().Keys)

	tests := []struct {
		msg  tea.KeyMsg
		want app.Action
	}{
		{runes("q"), app.ActQuit},
		{tea.KeyMsg{Type: tea.KeyEsc}, app.ActQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, app.ActQuit},
		{runes("k"), app.ActUp},
		{tea.KeyMsg{Type: tea.KeyUp}, app.ActUp},
		{runes("j"), app.ActDown},
		{tea.KeyMsg{Type: tea.KeyPgUp}, app.ActPageUp},
		{tea.KeyMsg{Type: tea.KeyPgDown}, app.ActPageDown},
		{tea.KeyMsg{Type: tea.KeyHome}, app.ActHome},
		{tea.KeyMsg{Type: tea.KeyEnd}, app.ActEnd},
		{tea.KeyMsg{Type: tea.KeyLeft}, app.ActLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, app.ActRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, app.ActEnter},
		{runes("f"), app.ActFeeds},
		{runes("e"), app.ActEpisodes},
		{runes("o"), app.ActDownloads},
		{runes("l"), app.ActLog},
		{runes("h"), app.ActHeaders},
		{runes("d"), app.ActDownload},
		{runes("r"), app.ActRefresh},
		{runes("x"), app.ActNone},
		{tea.KeyMsg{Type: tea.KeyTab}, app.ActNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, kh.Action(tt.msg))
		})
	}
}

func TestKeyHandler_CustomBindings(t *testing.T) {
	keys := config.TestConfig().Keys
	keys.Download = " x , ctrl+d "
	keys.Refresh = ""

	kh := NewKeyHandler(keys)

	assert.Equal(t, app.ActDownload, kh.Action(runes("x")))
	assert.Equal(t, app.ActDownload, kh.Action(tea.KeyMsg{Type: tea.KeyCtrlD}))
	assert.Equal(t, app.ActNone, kh.Action(runes("d")))
	assert.Equal(t, app.ActNone, kh.Action(runes("r")), "empty binding disables the action")
}

func TestKeyHandler_FirstBindingWins(t *testing.T) {
	keys := config.TestConfig().Keys
	keys.Log = "q"

	kh := NewKeyHandler(keys)
	assert.Equal(t, app.ActQuit, kh.Action(runes("q")))
}

func TestSplitKeys(t *testing.T) {
	assert.Equal(t, []string{"q", "esc"}, splitKeys("q, esc"))
	assert.Equal(t, []string{"pgdn", "pgdown"}, splitKeys("pgdn"))
	assert.Equal(t, []string{"pgdown", "pgdn"}, splitKeys("pgdown"))
	assert.Empty(t, splitKeys(" , "))
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/homily/internal/app"
	"github.com/pders01/homily/internal/config"
)

type binding struct {
	action  app.Action
	binding key.Binding
}

// KeyHandler decodes terminal key events into logical commands.
type KeyHandler struct {
	bindings []binding
}

func NewKeyHandler(keys config.KeyBindings) *KeyHandler {
	kh := &KeyHandler{}
	kh.bind(app.ActQuit, keys.Quit, "quit")
	kh.bind(app.ActUp, keys.Up, "up")
	kh.bind(app.ActDown, keys.Down, "down")
	kh.bind(app.ActPageUp, keys.PageUp, "page up")
	kh.bind(app.ActPageDown, keys.PageDown, "page down")
	kh.bind(app.ActHome, keys.Home, "first")
	kh.bind(app.ActEnd, keys.End, "last")
	kh.bind(app.ActLeft, keys.Left, "back")
	kh.bind(app.ActRight, keys.Right, "open")
	kh.bind(app.ActEnter, keys.Enter, "open")
	kh.bind(app.ActFeeds, keys.Feeds, "feeds")
	kh.bind(app.ActEpisodes, keys.Episodes, "episodes")
	kh.bind(app.ActDownloads, keys.Downloads, "downloads")
	kh.bind(app.ActLog, keys.Log, "log")
	kh.bind(app.ActHeaders, keys.Headers, "headers")
	kh.bind(app.ActDownload, keys.Download, "download")
	kh.bind(app.ActRefresh, keys.Refresh, "refresh all")
	return kh
}

func (kh *KeyHandler) bind(action app.Action, keys, help string) {
	names := splitKeys(keys)
	if len(names) == 0 {
		return
	}
	kh.bindings = append(kh.bindings, binding{
		action:  action,
		binding: key.NewBinding(key.WithKeys(names...), key.WithHelp(names[0], help)),
	})
}

// Action returns the first bound action for msg, or ActNone.
func (kh *KeyHandler) Action(msg tea.KeyMsg) app.Action {
	for _, b := range kh.bindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return app.ActNone
}

// splitKeys turns "q, esc" into key names. pgdn is accepted as pgdown.
func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		out = append(out, name)
		switch name {
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		}
	}
	return out
}

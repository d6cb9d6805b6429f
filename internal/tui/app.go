// Package tui adapts the event loop model to a bubbletea program: key
// decoding, the periodic queue drain and painting.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/homily/internal/app"
	"github.com/pders01/homily/internal/config"
)

type tickMsg time.Time

type App struct {
	model        *app.Model
	queue        app.Drainer
	keyHandler   *KeyHandler
	styles       Styles
	pollInterval time.Duration

	list   string
	status string
}

func NewApp(model *app.Model, queue app.Drainer, cfg *config.Config) *App {
	poll := cfg.UI.PollInterval
	if poll <= 0 {
		poll = 50 * time.Millisecond
	}
	return &App{
		model:        model,
		queue:        queue,
		keyHandler:   NewKeyHandler(cfg.Keys),
		styles:       NewStyles(cfg.UI.Colors),
		pollInterval: poll,
	}
}

func (a *App) Init() tea.Cmd {
	return a.tick()
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := a.keyHandler.Action(msg)
		if action == app.ActNone {
			return a, nil
		}
		if a.model.Apply(app.Cmd(action)) {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.model.Apply(app.Resize(msg.Width, msg.Height))

	case tickMsg:
		a.model.Drain(a.queue)
		return a, a.tick()
	}

	return a, nil
}

// View repaints only the regions the model marked dirty and reuses the
// previous paint for the rest.
func (a *App) View() string {
	f := a.model.Frame()
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}

	content := a.model.ContentDirty()
	if content {
		a.list = a.styles.paintList(f.Rows, f.Cursor, f.Width, f.Height-1)
	}
	if content || a.model.StatusDirty() {
		a.status = a.styles.paintStatus(f.Status, f.Width)
	}
	a.model.ClearDirty()

	if f.Height == 1 {
		return a.status
	}
	return a.list + "\n" + a.status
}

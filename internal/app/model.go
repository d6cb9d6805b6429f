// Package app holds the event loop state machine: the active view, the
// display projection and the handlers for commands and task messages.
// It is driven from a single goroutine and knows nothing about terminals.
package app

import (
	"github.com/pders01/homily/internal/debuglog"
	"github.com/pders01/homily/internal/feed"
	"github.com/pders01/homily/internal/listing"
	"github.com/pders01/homily/internal/message"
)

// Tasks spawns background work. Implementations must not block.
type Tasks interface {
	Download(dl feed.Download)
	ProbeHeaders(url string)
	Batch(dls []feed.Download)
}

// Drainer is the consumer side of the message queue.
type Drainer interface {
	Drain() []message.Message
}

// Frame is everything a renderer needs to paint one screen.
type Frame struct {
	View   View
	Rows   []listing.Row
	Cursor int
	Status string
	Width  int
	Height int
}

type Model struct {
	store *feed.Store
	tasks Tasks
	log   *debuglog.Logger

	view       View
	projection listing.List[listing.Row]
	status     string
	width      int
	height     int

	contentDirty bool
	statusDirty  bool
}

// New starts in the feeds view with everything marked dirty.
func New(store *feed.Store, tasks Tasks, log *debuglog.Logger) *Model {
	m := &Model{store: store, tasks: tasks, log: log}
	m.switchTo(ViewFeeds)
	m.followSelection()
	return m
}

func (m *Model) View() View          { return m.view }
func (m *Model) Status() string      { return m.status }
func (m *Model) Store() *feed.Store  { return m.store }
func (m *Model) Size() (int, int)    { return m.width, m.height }
func (m *Model) ContentDirty() bool  { return m.contentDirty }
func (m *Model) StatusDirty() bool   { return m.statusDirty }
func (m *Model) Cursor() int         { return m.projection.Cursor() }
func (m *Model) Rows() []listing.Row { return m.projection.Items() }

// ClearDirty is called once the frame has been painted.
func (m *Model) ClearDirty() {
	m.contentDirty = false
	m.statusDirty = false
}

func (m *Model) Frame() Frame {
	return Frame{
		View:   m.view,
		Rows:   m.projection.Items(),
		Cursor: m.projection.Cursor(),
		Status: m.status,
		Width:  m.width,
		Height: m.height,
	}
}

// pageSize is the number of list rows that fit above the status line.
func (m *Model) pageSize() int {
	return max(m.height-1, 1)
}

// project builds the rows and cursor of v's backing list.
func (m *Model) project(v View) listing.List[listing.Row] {
	switch v {
	case ViewFeeds:
		return listing.Project(m.store.Feeds())
	case ViewEpisodes:
		if f := m.store.CurrentFeed(); f != nil {
			return listing.Project(&f.Episodes)
		}
	case ViewHeaders:
		return listing.Project(m.store.Headers())
	case ViewDownloads:
		return listing.Project(m.store.Downloads())
	case ViewLog:
		return listing.Project(m.store.Log())
	}
	return listing.List[listing.Row]{}
}

func (m *Model) switchTo(v View) {
	m.view = v
	m.refresh()
}

// refresh re-seeds the projection after the active backing list changed.
func (m *Model) refresh() {
	m.projection = m.project(m.view)
	m.contentDirty = true
}

// refreshIf re-seeds the projection when one of views is active.
func (m *Model) refreshIf(views ...View) {
	for _, v := range views {
		if m.view == v {
			m.refresh()
			return
		}
	}
}

// writeBack copies the projection cursor into the active backing list.
func (m *Model) writeBack() {
	c := m.projection.Cursor()
	switch m.view {
	case ViewFeeds:
		m.store.Feeds().SetCursor(c)
	case ViewEpisodes:
		if f := m.store.CurrentFeed(); f != nil {
			f.Episodes.SetCursor(c)
		}
	case ViewHeaders:
		m.store.Headers().SetCursor(c)
	case ViewDownloads:
		m.store.Downloads().SetCursor(c)
	case ViewLog:
		m.store.Log().SetCursor(c)
	}
}

// selectionURL is the feed URL in the feeds view and the enclosure URL in
// the episodes view. Other views have no selection URL.
func (m *Model) selectionURL() string {
	f := m.store.CurrentFeed()
	if f == nil {
		return ""
	}
	switch m.view {
	case ViewFeeds:
		return f.URL
	case ViewEpisodes:
		if ep, ok := f.Episodes.Current(); ok {
			return ep.EnclosureURL
		}
	}
	return ""
}

// followSelection shows the selected item's URL in the status line.
func (m *Model) followSelection() {
	if m.view != ViewFeeds && m.view != ViewEpisodes {
		return
	}
	if url := m.selectionURL(); url != "" {
		m.setStatus(url)
	}
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusDirty = true
}

func (m *Model) navigate(move func(*listing.List[listing.Row])) {
	move(&m.projection)
	m.writeBack()
}

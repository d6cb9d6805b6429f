package app

import (
	"github.com/pders01/homily/internal/feed"
	"github.com/pders01/homily/internal/listing"
)

// Apply executes one command and reports whether the program should quit.
func (m *Model) Apply(cmd Command) bool {
	switch cmd.Action {
	case ActNone:
		return false
	case ActQuit:
		return true

	case ActUp:
		m.navigate(func(l *listing.List[listing.Row]) { l.Shift(-1) })
	case ActDown:
		m.navigate(func(l *listing.List[listing.Row]) { l.Shift(1) })
	case ActPageUp:
		m.navigate(func(l *listing.List[listing.Row]) { l.Shift(-m.pageSize()) })
	case ActPageDown:
		m.navigate(func(l *listing.List[listing.Row]) { l.Shift(m.pageSize()) })
	case ActHome:
		m.navigate((*listing.List[listing.Row]).Home)
	case ActEnd:
		m.navigate((*listing.List[listing.Row]).End)

	case ActLeft, ActFeeds:
		m.switchTo(ViewFeeds)
	case ActRight, ActEnter:
		if m.view == ViewFeeds {
			if f := m.store.CurrentFeed(); f != nil && f.Episodes.Len() > 0 {
				m.switchTo(ViewEpisodes)
			}
		}
	case ActEpisodes:
		m.switchTo(ViewEpisodes)
	case ActDownloads:
		m.switchTo(ViewDownloads)
	case ActLog:
		m.switchTo(ViewLog)

	case ActHeaders:
		if url := m.selectionURL(); url != "" {
			m.tasks.ProbeHeaders(url)
		}
		m.switchTo(ViewHeaders)

	case ActDownload:
		m.startDownload()
	case ActRefresh:
		m.startRefresh()

	case ActResize:
		m.width, m.height = cmd.Width, cmd.Height
	}

	m.contentDirty = true
	m.followSelection()
	return false
}

// startDownload fetches the selected feed document or episode.
func (m *Model) startDownload() {
	f := m.store.CurrentFeed()
	if f == nil {
		return
	}

	var dl feed.Download
	switch m.view {
	case ViewFeeds:
		dl = m.store.FeedDownload(f)
	case ViewEpisodes:
		ep, ok := f.Episodes.Current()
		if !ok {
			return
		}
		dl = m.store.EpisodeDownload(f, ep)
	default:
		return
	}

	if dl.URL == "" {
		m.log.Warnf("nothing to download for %s", dl.Path)
		return
	}
	m.store.AddDownload(dl)
	m.tasks.Download(dl)
}

// startRefresh downloads every feed document as one batch.
func (m *Model) startRefresh() {
	dls := m.store.RefreshDownloads()
	for _, dl := range dls {
		m.store.AddDownload(dl)
	}
	m.tasks.Batch(dls)
	m.refreshIf(ViewDownloads)
}

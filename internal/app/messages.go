package app

import (
	"github.com/pders01/homily/internal/message"
)

// Drain applies every queued message in order and returns how many there were.
func (m *Model) Drain(q Drainer) int {
	msgs := q.Drain()
	for _, msg := range msgs {
		m.HandleMessage(msg)
	}
	return len(msgs)
}

// HandleMessage applies one task message. Unknown download URLs and unknown
// feed names are ignored.
func (m *Model) HandleMessage(msg message.Message) {
	switch msg := msg.(type) {
	case message.Notification:
		m.status = msg.Text

	case message.FeedsReloaded:
		m.status = "Feed updated"
		// ReloadAll logs its own failure and keeps the current feeds.
		if err := m.store.ReloadAll(); err == nil {
			m.refreshIf(ViewFeeds, ViewEpisodes)
		}

	case message.FeedDownloaded:
		m.status = "Downloaded: " + msg.FeedName
		if err := m.store.ReloadFeed(msg.FeedName); err == nil {
			m.refreshIf(ViewFeeds)
			if f := m.store.CurrentFeed(); f != nil && f.Name == msg.FeedName {
				m.refreshIf(ViewEpisodes)
			}
		}

	case message.EpisodeDownloaded:
		m.status = "Downloaded: " + msg.Label
		if f := m.store.CurrentFeed(); f != nil {
			f.CheckDownloaded()
		}
		m.refreshIf(ViewEpisodes, ViewFeeds)

	case message.HeadersFetched:
		m.store.SetHeaders(msg.Headers)
		m.switchTo(ViewHeaders)

	case message.DownloadProgress:
		if m.store.UpdateProgress(msg.URL, msg.Bytes) {
			m.refreshIf(ViewDownloads)
		}

	case message.DownloadSize:
		if m.store.UpdateSize(msg.URL, msg.Bytes) {
			m.refreshIf(ViewDownloads)
		}

	case message.LogMessage:
		m.store.AppendLog(msg.Text)
		m.refreshIf(ViewLog)
	}
	m.statusDirty = true
}

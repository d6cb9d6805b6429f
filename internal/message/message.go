// Package message defines the events background tasks send to the event loop.
package message

import "fmt"

// Message is the closed set of events the loop understands.
type Message interface {
	isMessage()
}

// Header is a single response header value.
type Header struct {
	Name  string
	Value string
}

func (h Header) String() string { return fmt.Sprintf("%s: %s", h.Name, h.Value) }

type (
	// Notification replaces the status line text.
	Notification struct{ Text string }
	// LogMessage appends a line to the log view.
	LogMessage struct{ Text string }
	// FeedsReloaded asks for every cached feed document to be re-read.
	FeedsReloaded struct{}
	// FeedDownloaded asks for one feed's cached document to be re-read.
	FeedDownloaded struct{ FeedName string }
	// EpisodeDownloaded reports a finished episode download.
	EpisodeDownloaded struct{ Label string }
	// DownloadProgress carries the bytes written so far for a URL.
	DownloadProgress struct {
		URL   string
		Bytes int64
	}
	// DownloadSize carries the announced total size for a URL.
	DownloadSize struct {
		URL   string
		Bytes int64
	}
	// HeadersFetched carries the result of a header probe.
	HeadersFetched struct{ Headers []Header }
)

func (Notification) isMessage()      {}
func (LogMessage) isMessage()        {}
func (FeedsReloaded) isMessage()     {}
func (FeedDownloaded) isMessage()    {}
func (EpisodeDownloaded) isMessage() {}
func (DownloadProgress) isMessage()  {}
func (DownloadSize) isMessage()      {}
func (HeadersFetched) isMessage()    {}

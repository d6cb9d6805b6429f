package app

// View identifies which backing list the projection mirrors.
type View int

const (
	ViewFeeds View = iota
	ViewEpisodes
	ViewHeaders
	ViewDownloads
	ViewLog
)

func (v View) String() string {
	switch v {
	case ViewFeeds:
		return "feeds"
	case ViewEpisodes:
		return "episodes"
	case ViewHeaders:
		return "headers"
	case ViewDownloads:
		return "downloads"
	case ViewLog:
		return "log"
	default:
		return "unknown"
	}
}

package app

// Action is a logical command decoded from input.
type Action int

const (
	ActNone Action = iota
	ActQuit
	ActUp
	ActDown
	ActPageUp
	ActPageDown
	ActHome
	ActEnd
	ActLeft
	ActRight
	ActEnter
	ActFeeds
	ActEpisodes
	ActDownloads
	ActLog
	ActHeaders
	ActDownload
	ActRefresh
	ActResize
)

var actionNames = map[Action]string{
	ActNone:      "none",
	ActQuit:      "quit",
	ActUp:        "up",
	ActDown:      "down",
	ActPageUp:    "page up",
	ActPageDown:  "page down",
	ActHome:      "home",
	ActEnd:       "end",
	ActLeft:      "left",
	ActRight:     "right",
	ActEnter:     "enter",
	ActFeeds:     "feeds",
	ActEpisodes:  "episodes",
	ActDownloads: "downloads",
	ActLog:       "log",
	ActHeaders:   "headers",
	ActDownload:  "download",
	ActRefresh:   "refresh",
	ActResize:    "resize",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Command is an Action plus the terminal size carried by ActResize.
type Command struct {
	Action Action
	Width  int
	Height int
}

// Cmd wraps an action without arguments.
func Cmd(a Action) Command { return Command{Action: a} }

// Resize reports new terminal dimensions.
func Resize(width, height int) Command {
	return Command{Action: ActResize, Width: width, Height: height}
}

package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pders01/homily/internal/listing"
	"github.com/pders01/homily/internal/media"
	"github.com/pders01/homily/internal/message"
	"github.com/pders01/homily/internal/validation"
)

// DateLayout renders publish timestamps in episode rows.
const DateLayout = "2006-01-02 15:04:05 -07:00"

type Feed struct {
	Name   string
	Folder string
	// SaveFolder is where episode files go, already resolved against the root.
	SaveFolder string
	URL        string
	Episodes   listing.List[Episode]
}

type Episode struct {
	Title         string
	Published     *time.Time
	EnclosureURL  string
	EnclosureType string
	Downloaded    bool
	// FeedName identifies the owning feed in the Store.
	FeedName string
}

type Download struct {
	URL        string
	Path       string
	Downloaded int64
	// Total is zero until the server announces a size.
	Total      int64
	Completion message.Message
}

// LogLine is one entry of the log view.
type LogLine string

// DocumentPath is where the feed's cached document lives.
func (f *Feed) DocumentPath(root string) string {
	return filepath.Join(root, f.Folder+".rss")
}

// Filename is the sanitized file name an episode is saved under.
func (e Episode) Filename() string {
	return validation.SanitizeFilename(e.Title) + "." + media.Builtin().Extension(e.EnclosureURL, e.EnclosureType)
}

// EpisodePath is the destination of ep inside the feed's save folder.
func (f *Feed) EpisodePath(ep Episode) string {
	return filepath.Join(f.SaveFolder, ep.Filename())
}

// CheckDownloaded refreshes every episode's Downloaded flag from the filesystem.
func (f *Feed) CheckDownloaded() {
	for i := range f.Episodes.Items() {
		ep := f.Episodes.At(i)
		_, err := os.Stat(f.EpisodePath(*ep))
		ep.Downloaded = err == nil
	}
}

// Latest returns the first episode after sorting, if any.
func (f *Feed) Latest() (Episode, bool) {
	eps := f.Episodes.Items()
	if len(eps) == 0 {
		return Episode{}, false
	}
	return eps[0], true
}

func (f *Feed) RenderText() string {
	return fmt.Sprintf("%s (%s)", f.Name, f.Folder)
}

// StyleHint emphasizes feeds whose newest episode is still waiting to be
// fetched. Teasers do not count.
func (f *Feed) StyleHint() listing.Style {
	ep, ok := f.Latest()
	if !ok || ep.Downloaded || strings.Contains(strings.ToLower(ep.Title), "teaser") {
		return listing.StyleNormal
	}
	return listing.StyleEmphasized
}

func (e Episode) RenderText() string {
	date := "date unknown"
	if e.Published != nil {
		date = e.Published.Format(DateLayout)
	}
	return e.Title + " " + date
}

func (e Episode) StyleHint() listing.Style {
	if e.Downloaded {
		return listing.StyleEmphasized
	}
	return listing.StyleNormal
}

func (d *Download) RenderText() string {
	size := humanize.Bytes(uint64(max(d.Downloaded, 0)))
	if d.Total > 0 {
		size += "/" + humanize.Bytes(uint64(d.Total))
	}
	return size + " " + filepath.Base(d.Path)
}

func (d *Download) StyleHint() listing.Style {
	if d.Total > 0 && d.Downloaded >= d.Total {
		return listing.StyleEmphasized
	}
	return listing.StyleNormal
}

func (l LogLine) RenderText() string       { return string(l) }
func (l LogLine) StyleHint() listing.Style { return listing.StyleNormal }

// HeaderRow adapts a probed header to the list view.
type HeaderRow message.Header

func (h HeaderRow) RenderText() string       { return message.Header(h).String() }
func (h HeaderRow) StyleHint() listing.Style { return listing.StyleNormal }

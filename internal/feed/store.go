package feed

import (
	"errors"
	"fmt"

	"github.com/pders01/homily/internal/debuglog"
	"github.com/pders01/homily/internal/listing"
	"github.com/pders01/homily/internal/message"
	"github.com/pders01/homily/internal/validation"
)

// ErrFeedNotFound is returned when no feed carries the requested name.
var ErrFeedNotFound = errors.New("feed not found")

// Store holds every collection the views display. It is owned by the event
// loop and is not safe for concurrent use.
type Store struct {
	root      string
	listPath  string
	log       *debuglog.Logger
	parser    *Parser
	validator *validation.FeedURLValidator

	feeds     listing.List[*Feed]
	downloads listing.List[*Download]
	headers   listing.List[HeaderRow]
	logLines  listing.List[LogLine]
}

// NewStore creates an empty store rooted at root. listPath names the feed list.
func NewStore(root, listPath string, log *debuglog.Logger) *Store {
	return &Store{
		root:      root,
		listPath:  listPath,
		log:       log,
		parser:    NewParser(),
		validator: validation.NewFeedURLValidator(),
	}
}

// SetPermissiveValidation allows feeds on local or private addresses.
func (s *Store) SetPermissiveValidation(permissive bool) {
	if permissive {
		s.validator = validation.NewPermissiveFeedURLValidator()
	} else {
		s.validator = validation.NewFeedURLValidator()
	}
}

func (s *Store) Root() string { return s.root }

// Load reads the feed list and every cached document. Only a missing or
// malformed feed list is an error; per-feed problems are logged.
func (s *Store) Load() error {
	feeds, err := s.loadFeeds()
	if err != nil {
		return err
	}
	s.feeds.Replace(feeds)
	return nil
}

func (s *Store) loadFeeds() ([]*Feed, error) {
	entries, err := LoadFeedList(s.listPath)
	if err != nil {
		return nil, err
	}

	feeds := make([]*Feed, 0, len(entries))
	for _, e := range entries {
		if !validation.IsPathSafe(e.Folder) {
			s.log.Errorf("skipping feed %s: unsafe folder %q", e.Name, e.Folder)
			continue
		}
		if err := s.validator.Validate(e.URL); err != nil {
			s.log.Warnf("feed %s: %v", e.Name, err)
		}
		f := &Feed{
			Name:       e.Name,
			Folder:     e.Folder,
			SaveFolder: validation.ResolveDir(s.root, e.SaveFolder, e.Folder),
			URL:        e.URL,
		}
		s.refresh(f)
		feeds = append(feeds, f)
	}
	s.log.Infof("loaded %d feeds", len(feeds))
	return feeds, nil
}

// refresh re-reads f's cached document. A failure leaves f without episodes.
func (s *Store) refresh(f *Feed) {
	log := s.log.WithFields(map[string]any{"feed": f.Name})
	eps, err := s.parser.ParseFile(f.DocumentPath(s.root), f.Name)
	switch {
	case errors.Is(err, ErrNoDocument):
		log.Infof("no cached document")
	case err != nil:
		log.Warnf("failed to load cached document: %v", err)
	}
	SortEpisodes(eps)
	f.Episodes.Replace(eps)
	f.CheckDownloaded()
	if err == nil {
		log.Debugf("loaded %d episodes", len(eps))
	}
}

// ReloadFeed re-reads the cached document of the named feed only.
func (s *Store) ReloadFeed(name string) error {
	f := s.FeedByName(name)
	if f == nil {
		s.log.Warnf("reload: no feed named %s", name)
		return fmt.Errorf("%s: %w", name, ErrFeedNotFound)
	}
	s.refresh(f)
	return nil
}

// ReloadAll rebuilds the whole feed collection from disk. Cursors into the
// old collection are only kept where they still fit. If the feed list cannot
// be read the current feeds stay in place.
func (s *Store) ReloadAll() error {
	feeds, err := s.loadFeeds()
	if err != nil {
		s.log.Errorf("reload: %v", err)
		return err
	}
	s.feeds.Replace(feeds)
	return nil
}

func (s *Store) Feeds() *listing.List[*Feed] { return &s.feeds }

// CurrentFeed returns the selected feed, or nil when there are none.
func (s *Store) CurrentFeed() *Feed {
	f, _ := s.feeds.Current()
	return f
}

func (s *Store) FeedByName(name string) *Feed {
	for _, f := range s.feeds.Items() {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FeedDownload describes fetching f's document into the cache.
func (s *Store) FeedDownload(f *Feed) Download {
	return Download{
		URL:        f.URL,
		Path:       f.DocumentPath(s.root),
		Completion: message.FeedDownloaded{FeedName: f.Name},
	}
}

// EpisodeDownload describes fetching ep's enclosure into f's save folder.
func (s *Store) EpisodeDownload(f *Feed, ep Episode) Download {
	return Download{
		URL:        ep.EnclosureURL,
		Path:       f.EpisodePath(ep),
		Completion: message.EpisodeDownloaded{Label: ep.Title},
	}
}

// RefreshDownloads lists one document download per feed, in feed order.
func (s *Store) RefreshDownloads() []Download {
	dls := make([]Download, 0, s.feeds.Len())
	for _, f := range s.feeds.Items() {
		dls = append(dls, s.FeedDownload(f))
	}
	return dls
}

func (s *Store) Downloads() *listing.List[*Download] { return &s.downloads }

// AddDownload records d for display. Entries are never removed.
func (s *Store) AddDownload(d Download) *Download {
	entry := &d
	s.downloads.Append(entry)
	return entry
}

func (s *Store) findDownload(url string) *Download {
	for _, d := range s.downloads.Items() {
		if d.URL == url {
			return d
		}
	}
	return nil
}

// UpdateProgress sets the byte counter of the first download for url.
// It reports false when no download matches.
func (s *Store) UpdateProgress(url string, n int64) bool {
	d := s.findDownload(url)
	if d == nil {
		return false
	}
	d.Downloaded = n
	return true
}

// UpdateSize sets the announced total of the first download for url.
func (s *Store) UpdateSize(url string, n int64) bool {
	d := s.findDownload(url)
	if d == nil {
		return false
	}
	d.Total = n
	return true
}

func (s *Store) Headers() *listing.List[HeaderRow] { return &s.headers }

// SetHeaders replaces the header list and moves its cursor to the top.
func (s *Store) SetHeaders(headers []message.Header) {
	rows := make([]HeaderRow, len(headers))
	for i, h := range headers {
		rows[i] = HeaderRow(h)
	}
	s.headers = listing.New(rows)
}

func (s *Store) Log() *listing.List[LogLine] { return &s.logLines }

func (s *Store) AppendLog(text string) {
	s.logLines.Append(LogLine(text))
}

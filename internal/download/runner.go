// Package download runs the background network tasks. Tasks never touch
// application state; they report only through a message.Sender.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pders01/homily/internal/config"
	"github.com/pders01/homily/internal/debuglog"
	"github.com/pders01/homily/internal/feed"
	"github.com/pders01/homily/internal/media"
	"github.com/pders01/homily/internal/message"
	"golang.org/x/sync/errgroup"
)

const defaultChunkSize = 32 * 1024

type Runner struct {
	ctx           context.Context
	client        *http.Client
	userAgent     string
	headerTimeout time.Duration
	chunkSize     int
	maxConcurrent int
	sender        message.Sender
	log           *debuglog.Logger

	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

// NewRunner creates a runner whose spawned tasks run under ctx. Cancelling
// ctx aborts in-flight I/O; nothing waits for tasks to finish.
func NewRunner(ctx context.Context, cfg config.FeedConfig, sender message.Sender, log *debuglog.Logger) *Runner {
	chunk := cfg.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}
	limit := cfg.MaxConcurrent
	if limit <= 0 || limit > config.MaxConcurrentLimit {
		limit = config.MaxConcurrentLimit
	}
	return &Runner{
		ctx: ctx,
		client: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		userAgent:     cfg.UserAgent,
		headerTimeout: cfg.HeaderTimeout,
		chunkSize:     chunk,
		maxConcurrent: limit,
		sender:        sender,
		log:           log,
	}
}

// Download fetches dl in the background.
func (r *Runner) Download(dl feed.Download) {
	go func() { _ = r.Fetch(r.ctx, dl) }()
}

// ProbeHeaders issues a HEAD request for url in the background.
func (r *Runner) ProbeHeaders(url string) {
	go func() { _ = r.Probe(r.ctx, url) }()
}

// Batch fetches every download in the background, then reports FeedsReloaded.
func (r *Runner) Batch(dls []feed.Download) {
	go r.RunBatch(r.ctx, dls)
}

// MaxInFlight is the highest number of batch downloads seen running at once.
func (r *Runner) MaxInFlight() int64 {
	return r.maxInFlight.Load()
}

func (r *Runner) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	return req, nil
}

// Fetch streams dl.URL into dl.Path, reporting progress after every chunk.
// The completion message is sent only when the whole body was written.
// Errors are logged and returned; a partial file is left in place.
func (r *Runner) Fetch(ctx context.Context, dl feed.Download) error {
	log := r.log.WithFields(map[string]any{"url": dl.URL, "path": dl.Path})
	err := r.fetch(ctx, dl, log)
	if err != nil {
		log.Errorf("download failed: %v", err)
	}
	return err
}

func (r *Runner) fetch(ctx context.Context, dl feed.Download, log *debuglog.FieldLogger) error {
	log.Infof("downloading")

	req, err := r.newRequest(ctx, http.MethodGet, dl.URL)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	if resp.ContentLength > 0 {
		r.sender.Send(message.DownloadSize{URL: dl.URL, Bytes: resp.ContentLength})
	}
	log.Debugf("saving %s content",
		media.Builtin().DetectType(dl.URL, resp.Header.Get("Content-Type")))

	if err := os.MkdirAll(filepath.Dir(dl.Path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	f, err := os.Create(dl.Path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	var read, written int64
	buf := make([]byte, r.chunkSize)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			read += int64(n)
			w, werr := f.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return fmt.Errorf("writing %s: %w", dl.Path, werr)
			}
			r.sender.Send(message.Notification{Text: progressText(read, written)})
			r.sender.Send(message.DownloadProgress{URL: dl.URL, Bytes: read})
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return fmt.Errorf("reading body: %w", rerr)
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dl.Path, err)
	}

	log.Infof("downloaded")
	if dl.Completion != nil {
		r.sender.Send(dl.Completion)
	}
	return nil
}

func progressText(read, written int64) string {
	return fmt.Sprintf("bytes:%8s%8s", humanize.Bytes(uint64(read)), humanize.Bytes(uint64(written)))
}

// Probe requests only the headers of url and reports them sorted by name,
// one entry per value. Any HTTP response counts as success.
func (r *Runner) Probe(ctx context.Context, url string) error {
	if r.headerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.headerTimeout)
		defer cancel()
	}

	req, err := r.newRequest(ctx, http.MethodHead, url)
	if err != nil {
		r.log.Warnf("couldn't get headers for %s: %v", url, err)
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warnf("couldn't get headers for %s: %v", url, err)
		return fmt.Errorf("probing headers: %w", err)
	}
	resp.Body.Close()

	r.sender.Send(message.HeadersFetched{Headers: flattenHeaders(resp.Header)})
	return nil
}

func flattenHeaders(h http.Header) []message.Header {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]message.Header, 0, len(names))
	for _, name := range names {
		for _, v := range h[name] {
			out = append(out, message.Header{Name: name, Value: v})
		}
	}
	return out
}

// RunBatch fetches dls with at most maxConcurrent (never more than
// config.MaxConcurrentLimit) in flight, waits for all of
// them regardless of outcome and then sends exactly one FeedsReloaded.
func (r *Runner) RunBatch(ctx context.Context, dls []feed.Download) {
	var g errgroup.Group
	g.SetLimit(r.maxConcurrent)

	var failed atomic.Int64
	for _, dl := range dls {
		g.Go(func() error {
			r.enter()
			defer r.inFlight.Add(-1)
			if err := r.Fetch(ctx, dl); err != nil {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	r.log.Infof("refreshed %d feeds, %d failed", len(dls), failed.Load())
	r.sender.Send(message.FeedsReloaded{})
}

func (r *Runner) enter() {
	n := r.inFlight.Add(1)
	for {
		m := r.maxInFlight.Load()
		if n <= m || r.maxInFlight.CompareAndSwap(m, n) {
			return
		}
	}
}

package feed

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mmcdole/gofeed"
)

// ErrNoDocument means the feed has never been fetched.
var ErrNoDocument = errors.New("no cached document")

type Parser struct {
	parser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		parser: gofeed.NewParser(),
	}
}

// repairAmpersands escapes bare "& " sequences that some publishers emit.
func repairAmpersands(doc string) string {
	return strings.ReplaceAll(doc, "& ", "&amp; ")
}

// ParseFile reads and parses a cached feed document.
func (p *Parser) ParseFile(path, feedName string) ([]Episode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoDocument)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.Parse(string(data), feedName)
}

// Parse turns a feed document into episodes in document order. Items without
// an enclosure are not episodes and are skipped.
func (p *Parser) Parse(doc, feedName string) ([]Episode, error) {
	parsed, err := p.parser.ParseString(repairAmpersands(doc))
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	episodes := make([]Episode, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		enc := firstEnclosure(item)
		if enc == nil {
			continue
		}
		episodes = append(episodes, Episode{
			Title:         item.Title,
			Published:     item.PublishedParsed,
			EnclosureURL:  enc.URL,
			EnclosureType: enc.Type,
			FeedName:      feedName,
		})
	}
	return episodes, nil
}

func firstEnclosure(item *gofeed.Item) *gofeed.Enclosure {
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			return enc
		}
	}
	return nil
}

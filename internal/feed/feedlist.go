package feed

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one subscription from the feed list file.
type Entry struct {
	Name       string `xml:"name" yaml:"name"`
	Folder     string `xml:"folder" yaml:"folder"`
	SaveFolder string `xml:"save-folder" yaml:"save-folder"`
	URL        string `xml:"url" yaml:"url"`
}

type entryList struct {
	Feeds []Entry `xml:"feed" yaml:"feeds"`
}

// LoadFeedList reads the ordered subscription list. Files ending in .yaml or
// .yml are YAML; everything else is parsed as XML.
func LoadFeedList(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feed list: %w", err)
	}
	return ParseFeedList(data, filepath.Ext(path))
}

// ParseFeedList decodes a feed list in the format implied by ext.
func ParseFeedList(data []byte, ext string) ([]Entry, error) {
	var list entryList
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parsing feed list: %w", err)
		}
	default:
		if err := xml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parsing feed list: %w", err)
		}
	}

	for i := range list.Feeds {
		e := &list.Feeds[i]
		e.Name = strings.TrimSpace(e.Name)
		e.Folder = strings.TrimSpace(e.Folder)
		e.SaveFolder = strings.TrimSpace(e.SaveFolder)
		e.URL = strings.TrimSpace(e.URL)
		if e.Name == "" {
			return nil, fmt.Errorf("feed list entry %d has no name", i+1)
		}
		if e.Folder == "" {
			return nil, fmt.Errorf("feed %q has no folder", e.Name)
		}
	}
	return list.Feeds, nil
}

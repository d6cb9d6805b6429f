// Package media maps enclosures to the file extension used when saving them.
package media

import (
	_ "embed"
	"fmt"
	"net/url"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed media_types.toml
var mediaTypesTOML []byte

type Type int

const (
	TypeUnknown Type = iota
	TypeAudio
	TypeVideo
)

func (t Type) String() string {
	switch t {
	case TypeAudio:
		return "audio"
	case TypeVideo:
		return "video"
	default:
		return "unknown"
	}
}

type TypeConfig struct {
	Extensions []string          `toml:"extensions"`
	MIME       map[string]string `toml:"mime"`
}

type TypesConfig struct {
	DefaultExtension string     `toml:"default_extension"`
	Audio            TypeConfig `toml:"audio"`
	Video            TypeConfig `toml:"video"`
}

// TypeTable resolves enclosure URLs and MIME types.
type TypeTable struct {
	config TypesConfig
}

// NewTypeTable parses the table from raw TOML.
func NewTypeTable(data []byte) (*TypeTable, error) {
	var config TypesConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing media types: %w", err)
	}
	if config.DefaultExtension == "" {
		config.DefaultExtension = "mp3"
	}
	return &TypeTable{config: config}, nil
}

var builtin = sync.OnceValue(func() *TypeTable {
	t, err := NewTypeTable(mediaTypesTOML)
	if err != nil {
		panic(err)
	}
	return t
})

// Builtin returns the table compiled into the binary.
func Builtin() *TypeTable {
	return builtin()
}

// urlExtension returns the lowercased extension of the URL path, ignoring
// query and fragment.
func urlExtension(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	return strings.TrimPrefix(strings.ToLower(path.Ext(p)), ".")
}

// DetectType classifies an enclosure by MIME type, then by URL extension.
func (t *TypeTable) DetectType(rawURL, mimeType string) Type {
	mimeType = normalizeMIME(mimeType)
	switch {
	case t.config.Audio.MIME[mimeType] != "":
		return TypeAudio
	case t.config.Video.MIME[mimeType] != "":
		return TypeVideo
	}

	ext := urlExtension(rawURL)
	switch {
	case ext == "":
	case slices.Contains(t.config.Audio.Extensions, ext):
		return TypeAudio
	case slices.Contains(t.config.Video.Extensions, ext):
		return TypeVideo
	}

	switch {
	case strings.HasPrefix(mimeType, "audio/"):
		return TypeAudio
	case strings.HasPrefix(mimeType, "video/"):
		return TypeVideo
	}
	return TypeUnknown
}

// Extension picks the extension (without dot) for a downloaded enclosure.
// A known URL extension wins over the MIME type; anything unrecognised gets
// the default.
func (t *TypeTable) Extension(rawURL, mimeType string) string {
	ext := urlExtension(rawURL)
	if slices.Contains(t.config.Audio.Extensions, ext) || slices.Contains(t.config.Video.Extensions, ext) {
		return ext
	}

	mimeType = normalizeMIME(mimeType)
	if e := t.config.Audio.MIME[mimeType]; e != "" {
		return e
	}
	if e := t.config.Video.MIME[mimeType]; e != "" {
		return e
	}
	return t.config.DefaultExtension
}

func normalizeMIME(m string) string {
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	return strings.ToLower(strings.TrimSpace(m))
}

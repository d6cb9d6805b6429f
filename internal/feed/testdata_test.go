package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Show</title>
		<item>
			<title>Older</title>
			<pubDate>Wed, 01 Jan 2025 12:00:00 GMT</pubDate>
			<enclosure url="https://cdn.example.org/older.mp3" type="audio/mpeg" length="10"/>
		</item>
		<item>
			<title>Newer</title>
			<pubDate>Thu, 02 Jan 2025 12:00:00 GMT</pubDate>
			<enclosure url="https://cdn.example.org/newer.m4a" type="audio/mp4" length="10"/>
		</item>
		<item>
			<title>Blog post without audio</title>
			<pubDate>Fri, 03 Jan 2025 12:00:00 GMT</pubDate>
		</item>
	</channel>
</rss>`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func at(day int) *time.Time {
	ts := time.Date(2025, time.January, day, 12, 0, 0, 0, time.UTC)
	return &ts
}

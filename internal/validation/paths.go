package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeFilename turns an episode title into a single path element by
// replacing path separators and NUL bytes with underscores.
func SanitizeFilename(title string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, title)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}

// ResolveDir places dir under root unless it is absolute or home-relative.
// An empty dir resolves to root/fallback.
func ResolveDir(root, dir, fallback string) string {
	if dir == "" {
		return filepath.Join(root, fallback)
	}
	if expanded, err := ExpandHome(dir); err == nil {
		dir = expanded
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}

// IsPathSafe performs a quick safety check on a path without full validation
func IsPathSafe(path string) bool {
	if strings.Contains(path, "\x00") {
		return false
	}
	if strings.Contains(path, "../") || strings.Contains(path, "..\\") {
		return false
	}
	return len(path) <= 4096
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pders01/homily/internal/config"
)

// withHome points HOME at a fresh directory and resets the flag globals.
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() {
		configPath, rootOverride, logLevel, logFile = "", "", "", ""
		allowLocalFeeds = false
	})
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	withHome(t)

	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "homily dev") {
		t.Errorf("Expected version output to contain 'homily dev', got: %s", out)
	}
	if !strings.Contains(out, "github.com/pders01/homily") {
		t.Errorf("Expected version output to contain 'github.com/pders01/homily', got: %s", out)
	}
}

func TestGenerateConfigCommand(t *testing.T) {
	home := withHome(t)
	configFile := filepath.Join(home, ".homily", "config.toml")

	out, err := execute(t, "config", "generate")
	if err != nil {
		t.Fatalf("config generate failed: %v", err)
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		t.Errorf("Config file was not created at %s", configFile)
	}
	if !strings.Contains(out, "Generated default configuration at:") {
		t.Errorf("Expected output to contain 'Generated default configuration at:', got: %s", out)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Feed.MaxConcurrent != 8 {
		t.Errorf("Expected MaxConcurrent 8, got %d", cfg.Feed.MaxConcurrent)
	}
}

func TestRootRejectsArguments(t *testing.T) {
	withHome(t)

	if _, err := execute(t, "unexpected"); err == nil {
		t.Error("Expected an error for a stray argument")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	home := withHome(t)
	root := filepath.Join(home, "podcasts")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}

	rootOverride = "~/podcasts"
	logLevel = "debug"
	logFile = filepath.Join(home, "homily.log")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Paths.Root != root {
		t.Errorf("Expected root %s, got %s", root, cfg.Paths.Root)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Log.File != logFile {
		t.Errorf("Expected log file %s, got %s", logFile, cfg.Log.File)
	}
	if cfg.FeedListPath() != filepath.Join(root, "feeds.xml") {
		t.Errorf("Unexpected feed list path %s", cfg.FeedListPath())
	}
}

func TestLoadConfigMissingRoot(t *testing.T) {
	home := withHome(t)
	rootOverride = filepath.Join(home, "missing")

	if _, err := loadConfig(); err == nil {
		t.Error("Expected an error for a missing config root")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	home := withHome(t)
	root := filepath.Join(home, "shows")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(home, "custom.toml")
	content := "[paths]\nroot = \"" + root + "\"\nfeed_list = \"feeds.yaml\"\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	configPath = file

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.FeedListPath() != filepath.Join(root, "feeds.yaml") {
		t.Errorf("Unexpected feed list path %s", cfg.FeedListPath())
	}
}

func TestRunFailsWithoutFeedList(t *testing.T) {
	withHome(t)
	cfg := config.TestConfig()
	cfg.Paths.Root = t.TempDir()

	err := run(context.Background(), cfg)
	if err == nil {
		t.Fatal("Expected an error when the feed list is missing")
	}
	if !strings.Contains(err.Error(), "failed to load feeds") {
		t.Errorf("Unexpected error: %v", err)
	}
}

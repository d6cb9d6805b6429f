package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// FileName is the config file looked up inside the root.
	FileName = "config.toml"
	// EnvPrefix prefixes environment overrides, e.g. HOMILY_FEED_USER_AGENT.
	EnvPrefix = "HOMILY"
)

type Config struct {
	Paths PathsConfig `mapstructure:"paths"`
	Feed  FeedConfig  `mapstructure:"feed"`
	UI    UIConfig    `mapstructure:"ui"`
	Log   LogConfig   `mapstructure:"log"`
	Keys  KeyBindings `mapstructure:"keys"`
}

type PathsConfig struct {
	Root     string `mapstructure:"root"`
	FeedList string `mapstructure:"feed_list"`
}

type FeedConfig struct {
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
	HeaderTimeout time.Duration `mapstructure:"header_timeout"`
	UserAgent     string        `mapstructure:"user_agent"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
	ChunkSize     int           `mapstructure:"chunk_size"`
}

type UIConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Colors       UIColors      `mapstructure:"colors"`
}

type UIColors struct {
	Selected         string `mapstructure:"selected"`
	Emphasized       string `mapstructure:"emphasized"`
	StatusForeground string `mapstructure:"status_foreground"`
	StatusBackground string `mapstructure:"status_background"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// KeyBindings maps each command to a comma separated list of key names
// as reported by the terminal, e.g. "q,esc".
type KeyBindings struct {
	Quit      string `mapstructure:"quit"`
	Up        string `mapstructure:"up"`
	Down      string `mapstructure:"down"`
	PageUp    string `mapstructure:"page_up"`
	PageDown  string `mapstructure:"page_down"`
	Home      string `mapstructure:"home"`
	End       string `mapstructure:"end"`
	Left      string `mapstructure:"left"`
	Right     string `mapstructure:"right"`
	Enter     string `mapstructure:"enter"`
	Feeds     string `mapstructure:"feeds"`
	Episodes  string `mapstructure:"episodes"`
	Downloads string `mapstructure:"downloads"`
	Log       string `mapstructure:"log"`
	Headers   string `mapstructure:"headers"`
	Download  string `mapstructure:"download"`
	Refresh   string `mapstructure:"refresh"`
}

// DefaultRoot is the per-user configuration root.
func DefaultRoot() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".homily")
}

func defaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Root:     DefaultRoot(),
			FeedList: "feeds.xml",
		},
		Feed: FeedConfig{
			HTTPTimeout:   0,
			HeaderTimeout: 10 * time.Second,
			UserAgent:     "homily/1.0 (https://github.com/pders01/homily)",
			MaxConcurrent: 8,
			ChunkSize:     32 * 1024,
		},
		UI: UIConfig{
			PollInterval: 50 * time.Millisecond,
			Colors: UIColors{
				Selected:         "12",
				Emphasized:       "15",
				StatusForeground: "0",
				StatusBackground: "15",
			},
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Keys: KeyBindings{
			Quit:      "q,esc,ctrl+c",
			Up:        "up,k",
			Down:      "down,j",
			PageUp:    "pgup",
			PageDown:  "pgdown",
			Home:      "home",
			End:       "end",
			Left:      "left",
			Right:     "right",
			Enter:     "enter",
			Feeds:     "f",
			Episodes:  "e",
			Downloads: "o",
			Log:       "l",
			Headers:   "h",
			Download:  "d",
			Refresh:   "r",
		},
	}
}

// settings flattens cfg into dotted viper keys. Durations are rendered as
// strings so written files stay readable.
func settings(cfg *Config) map[string]any {
	return map[string]any{
		"paths.root":      cfg.Paths.Root,
		"paths.feed_list": cfg.Paths.FeedList,

		"feed.http_timeout":   cfg.Feed.HTTPTimeout.String(),
		"feed.header_timeout": cfg.Feed.HeaderTimeout.String(),
		"feed.user_agent":     cfg.Feed.UserAgent,
		"feed.max_concurrent": cfg.Feed.MaxConcurrent,
		"feed.chunk_size":     cfg.Feed.ChunkSize,

		"ui.poll_interval":            cfg.UI.PollInterval.String(),
		"ui.colors.selected":          cfg.UI.Colors.Selected,
		"ui.colors.emphasized":        cfg.UI.Colors.Emphasized,
		"ui.colors.status_foreground": cfg.UI.Colors.StatusForeground,
		"ui.colors.status_background": cfg.UI.Colors.StatusBackground,

		"log.level":        cfg.Log.Level,
		"log.file":         cfg.Log.File,
		"log.max_size_mb":  cfg.Log.MaxSizeMB,
		"log.max_backups":  cfg.Log.MaxBackups,
		"log.max_age_days": cfg.Log.MaxAgeDays,

		"keys.quit":      cfg.Keys.Quit,
		"keys.up":        cfg.Keys.Up,
		"keys.down":      cfg.Keys.Down,
		"keys.page_up":   cfg.Keys.PageUp,
		"keys.page_down": cfg.Keys.PageDown,
		"keys.home":      cfg.Keys.Home,
		"keys.end":       cfg.Keys.End,
		"keys.left":      cfg.Keys.Left,
		"keys.right":     cfg.Keys.Right,
		"keys.enter":     cfg.Keys.Enter,
		"keys.feeds":     cfg.Keys.Feeds,
		"keys.episodes":  cfg.Keys.Episodes,
		"keys.downloads": cfg.Keys.Downloads,
		"keys.log":       cfg.Keys.Log,
		"keys.headers":   cfg.Keys.Headers,
		"keys.download":  cfg.Keys.Download,
		"keys.refresh":   cfg.Keys.Refresh,
	}
}

// Load reads configPath, or <default root>/config.toml when configPath is
// empty. A missing file yields the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	for key, value := range settings(defaultConfig()) {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("toml")
		v.AddConfigPath(DefaultRoot())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Paths.Root = expandPath(cfg.Paths.Root)
	cfg.Log.File = expandPath(cfg.Log.File)
}

// FeedListPath resolves the feed list file against the root.
func (c *Config) FeedListPath() string {
	if filepath.IsAbs(c.Paths.FeedList) {
		return c.Paths.FeedList
	}
	return filepath.Join(c.Paths.Root, c.Paths.FeedList)
}

// MaxConcurrentLimit is the ceiling for feed.max_concurrent.
const MaxConcurrentLimit = 8

// Validate reports settings the program cannot start with.
func (c *Config) Validate() error {
	info, err := os.Stat(c.Paths.Root)
	if err != nil {
		return fmt.Errorf("config root %s: %w", c.Paths.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("config root %s is not a directory", c.Paths.Root)
	}
	if c.Feed.MaxConcurrent < 1 || c.Feed.MaxConcurrent > MaxConcurrentLimit {
		return fmt.Errorf("feed.max_concurrent must be between 1 and %d, got %d",
			MaxConcurrentLimit, c.Feed.MaxConcurrent)
	}
	if c.Feed.ChunkSize < 1 {
		return fmt.Errorf("feed.chunk_size must be positive, got %d", c.Feed.ChunkSize)
	}
	if c.UI.PollInterval <= 0 {
		return fmt.Errorf("ui.poll_interval must be positive, got %s", c.UI.PollInterval)
	}
	return nil
}

func Save(config *Config, path string) error {
	v := viper.New()

	for key, value := range settings(config) {
		v.Set(key, value)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}

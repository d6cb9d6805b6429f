package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Paths.Root = ""
	cfg.Feed.HTTPTimeout = 5 * time.Second
	cfg.Feed.HeaderTimeout = 2 * time.Second
	cfg.Feed.UserAgent = "homily-test/1.0"
	cfg.Feed.ChunkSize = 4
	cfg.Log.Level = "debug"
	return cfg
}

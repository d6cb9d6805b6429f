package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/homily/internal/app"
	"github.com/pders01/homily/internal/config"
	"github.com/pders01/homily/internal/debuglog"
	"github.com/pders01/homily/internal/download"
	"github.com/pders01/homily/internal/feed"
	"github.com/pders01/homily/internal/message"
	"github.com/pders01/homily/internal/tui"
	"github.com/pders01/homily/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath      string
	rootOverride    string
	logLevel        string
	logFile         string
	allowLocalFeeds bool
)

var rootCmd = &cobra.Command{
	Use:           tui.AppName,
	Short:         "Terminal podcast feed tracker",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to configuration file")
	flags.StringVar(&rootOverride, "root", "", "Config root holding the feed list and downloads (overrides config)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off (overrides config)")
	flags.StringVar(&logFile, "log-file", "", "Also write log records to this file (overrides config)")
	rootCmd.Flags().BoolVar(&allowLocalFeeds, "allow-local-feeds", false, "Accept feed URLs on localhost and private networks")

	rootCmd.AddCommand(versionCmd)
	configCmd.AddCommand(configGenCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if rootOverride != "" {
		root, err := absPath(rootOverride)
		if err != nil {
			return nil, fmt.Errorf("invalid --root: %w", err)
		}
		cfg.Paths.Root = root
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		path, err := absPath(logFile)
		if err != nil {
			return nil, fmt.Errorf("invalid --log-file: %w", err)
		}
		cfg.Log.File = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func absPath(path string) (string, error) {
	expanded, err := validation.ExpandHome(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	queue := message.NewQueue()
	log := debuglog.New(debuglog.ParseLogLevel(cfg.Log.Level), queue)

	// Tasks still running at exit are abandoned, not awaited.
	defer func() {
		cancel()
		queue.Close()
		_ = log.Close()
	}()

	if err := log.OpenFile(debuglog.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		return err
	}

	store := feed.NewStore(cfg.Paths.Root, cfg.FeedListPath(), log)
	store.SetPermissiveValidation(allowLocalFeeds)
	if err := store.Load(); err != nil {
		return fmt.Errorf("failed to load feeds: %w", err)
	}

	runner := download.NewRunner(ctx, cfg.Feed, queue, log)
	model := app.New(store, runner, log)

	p := tea.NewProgram(tui.NewApp(model, queue, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jyoon/topic-tracker/internal/app"
	"github.com/jyoon/topic-tracker/internal/model"
	"github.com/jyoon/topic-tracker/internal/service"
	"github.com/jyoon/topic-tracker/internal/store"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Logger for non-interactive subcommands
	logger *zap.Logger
)

// rootCmd launches the interactive terminal UI.
var rootCmd = &cobra.Command{
	Use:   "topictracker",
	Short: "Track topics, goals, and the points you earn along the way",
	Long: `topictracker is a terminal app for personal research tracking.

Browse a topic catalog, record goals with regular check-ins and research
notes, and earn points for each activity. Points are spent in a small
reward shop. All state lives in a local SQLite database.

Run without arguments to start the interactive UI.`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		tracker, closeFn, err := openTracker(zap.NewNop())
		if err != nil {
			return err
		}
		defer closeFn()

		program := tea.NewProgram(app.New(tracker), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("running UI: %w", err)
		}
		return nil
	},
}

// openTracker loads the configuration, opens the SQLite store, and
// wires a tracker over it. The returned func closes the store.
func openTracker(log *zap.Logger) (*service.Tracker, func(), error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StoragePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating storage directory: %w", err)
	}

	kv, err := store.NewSQLiteKV(cfg.StoragePath, log)
	if err != nil {
		return nil, nil, err
	}

	tracker := service.New(kv, cfg.Rewards, log)
	return tracker, func() { _ = kv.Close() }, nil
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle: the closure refers to rootCmd.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The interactive UI owns the terminal; subcommands get a real logger.
		if cmd == rootCmd {
			return nil
		}

		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	}

	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", model.DefaultConfigPath(), "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default reward amounts.
const (
	DefaultSearchPoints        = 10
	DefaultCheckBasePoints     = 50
	DefaultCheckBonusStep      = 10
	DefaultResearchFieldPoints = 30
)

// Rewards holds the point amounts awarded for each activity.
type Rewards struct {
	// SearchPoints is the flat award per topic search.
	SearchPoints int `mapstructure:"search_points" yaml:"search_points"`

	// CheckBasePoints is the base award per goal check-in.
	CheckBasePoints int `mapstructure:"check_base_points" yaml:"check_base_points"`

	// CheckBonusStep is the per-rating-step bonus above a rating of 3.
	// Ratings below 3 never reduce the award below the base.
	CheckBonusStep int `mapstructure:"check_bonus_step" yaml:"check_bonus_step"`

	// ResearchFieldPoints is the award per newly-filled research field.
	ResearchFieldPoints int `mapstructure:"research_field_points" yaml:"research_field_points"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// StoragePath is the SQLite database file holding all persisted state.
	StoragePath string `mapstructure:"storage_path" yaml:"storage_path"`

	Rewards Rewards       `mapstructure:"rewards" yaml:"rewards"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultRewards returns the stock reward amounts.
func DefaultRewards() Rewards {
	return Rewards{
		SearchPoints:        DefaultSearchPoints,
		CheckBasePoints:     DefaultCheckBasePoints,
		CheckBonusStep:      DefaultCheckBonusStep,
		ResearchFieldPoints: DefaultResearchFieldPoints,
	}
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/topictracker/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "topictracker", "config.yaml")
}

// DefaultStoragePath returns the default SQLite database location,
// ~/.local/share/topictracker/tracker.db.
func DefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "tracker.db")
	}
	return filepath.Join(home, ".local", "share", "topictracker", "tracker.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		StoragePath: DefaultStoragePath(),
		Rewards:     DefaultRewards(),
		Display:     DisplayConfig{Theme: "default"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage_path", DefaultStoragePath())
	v.SetDefault("rewards.search_points", DefaultSearchPoints)
	v.SetDefault("rewards.check_base_points", DefaultCheckBasePoints)
	v.SetDefault("rewards.check_bonus_step", DefaultCheckBonusStep)
	v.SetDefault("rewards.research_field_points", DefaultResearchFieldPoints)
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage_path", cfg.StoragePath)
	v.Set("rewards", cfg.Rewards)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultStoragePath(), cfg.StoragePath)
	assert.Equal(t, DefaultRewards(), cfg.Rewards)
	assert.Equal(t, "default", cfg.Display.Theme)
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &AppConfig{
		StoragePath: "/tmp/tracker-test.db",
		Rewards: Rewards{
			SearchPoints:        5,
			CheckBasePoints:     25,
			CheckBonusStep:      5,
			ResearchFieldPoints: 15,
		},
		Display: DisplayConfig{Theme: "light"},
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPartialConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	partial := &AppConfig{
		StoragePath: "/tmp/partial.db",
		Rewards:     DefaultRewards(),
		Display:     DisplayConfig{Theme: "default"},
	}
	partial.Rewards.SearchPoints = 99
	require.NoError(t, SaveConfig(path, partial))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 99, got.Rewards.SearchPoints)
	assert.Equal(t, DefaultCheckBasePoints, got.Rewards.CheckBasePoints)
}

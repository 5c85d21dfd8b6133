package config_test

import (
	"testing"

	"festival-sync/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, 20, cfg.Events.PageSize)
	assert.Equal(t, 1000, cfg.Events.DelayMS)
	assert.Equal(t, 365, cfg.Events.WindowDays)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_NAME", ":memory:")
	t.Setenv("EVENTS_REGIONS", "costa-rica, berlin")
	t.Setenv("EVENTS_PAGE_SIZE", "50")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.Name)
	assert.Equal(t, 50, cfg.Events.PageSize)
	assert.Equal(t, []string{"costa-rica", "berlin"}, cfg.RegionList())
}

func TestRegionListTrimsEmpties(t *testing.T) {
	t.Setenv("EVENTS_REGIONS", " costa-rica ,, panama ,")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"costa-rica", "panama"}, cfg.RegionList())
}

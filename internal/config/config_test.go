package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/tracker"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_TRACKER_DATABASE_URL", "")
	t.Setenv("SESSION_TRACKER_MAX_SESSION_HOURS", "0")
	t.Setenv("SESSION_TRACKER_RATES_FILE", "")
	t.Setenv("SESSION_TRACKER_LOG_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DatabaseURL)
	assert.NotEmpty(t, cfg.LogDir)

	tc, err := cfg.Tracker()
	require.NoError(t, err)
	assert.Equal(t, tracker.DefaultMaxSessionHours, tc.MaxSessionHours)
}

func TestTracker_EnvOverridesMaxHours(t *testing.T) {
	t.Setenv("SESSION_TRACKER_MAX_SESSION_HOURS", "4")
	cfg, err := Load()
	require.NoError(t, err)

	tc, err := cfg.Tracker()
	require.NoError(t, err)
	assert.Equal(t, 4.0, tc.MaxSessionHours)
}

func TestTracker_RatesFilePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("human_hourly_rate: 150\n"), 0o644))

	cfg := &Config{RatesFile: path}
	tc, err := cfg.Tracker()
	require.NoError(t, err)

	assert.Equal(t, 150.0, tc.Metrics.HumanHourlyRate)
	// Unnamed keys keep their defaults.
	assert.Equal(t, 200.0, tc.Metrics.AIMonthlyCost)
	assert.Equal(t, 3.0, tc.Metrics.HumanTimeMultiplier)
}

func TestTracker_MissingRatesFile(t *testing.T) {
	cfg := &Config{RatesFile: "/nonexistent/rates.yaml"}
	_, err := cfg.Tracker()
	assert.Error(t, err)
}

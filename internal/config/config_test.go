package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "matchpulse-pipeline", cfg.ServiceName)
	assert.Equal(t, defaultCurrentSeason, cfg.CurrentSeason)
	assert.Equal(t, filepath.Join("data", "raw"), cfg.RawDir)
	assert.Equal(t, filepath.Join("data", "cleaned"), cfg.CleanDir)
	assert.Equal(t, filepath.Join("data", "dashboard_data.json"), cfg.OutputPath)
	assert.True(t, cfg.FetchEnabled)
	assert.True(t, cfg.FPLEnabled)
	assert.True(t, cfg.UnderstatEnabled)
	assert.False(t, cfg.SnapshotDBEnabled)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 4, cfg.SectionWorkers)
	assert.Len(t, cfg.Seasons, 4)
}

func TestLoad_CurrentSeasonMustBeConfigured(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CURRENT_SEASON", "1999-00")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_SnapshotDBRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SNAPSHOT_DB_ENABLED", "true")
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when SNAPSHOT_DB_ENABLED=true without DB_URL")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestCurrent_ResolvesSeasonEntry(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CURRENT_SEASON", "2023-24")

	cfg, err := Load()
	require.NoError(t, err)

	season := cfg.Current()
	assert.Equal(t, "2324", season.Code)
	assert.Equal(t, "2023", season.UnderstatYear)
	assert.Equal(t, FPLModeHistorical, season.FPLMode)
}

func TestSeasonLabels_ChronologicalOrder(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"2022-23", "2023-24", "2024-25", "2025-26"}, cfg.SeasonLabels())
}

func TestCanonicalTeams_TwentyPerSeason(t *testing.T) {
	for _, s := range ActiveSeasons() {
		assert.Len(t, CanonicalTeams(s.Label), 20, "season %s", s.Label)
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel.String())
}

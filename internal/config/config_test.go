package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SYMBOLS", "PACING_DELAY_MS", "PROVIDER", "LOCK_BACKEND", "MIGRATE_ON_START", "PG_MAX_CONNS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	require.Equal(t, []string{"AAPL", "GOOGL", "MSFT"}, cfg.Symbols)
	require.Equal(t, 500*time.Millisecond, cfg.PacingDelay)
	require.Equal(t, "alphavantage", cfg.Provider)
	require.Equal(t, "none", cfg.LockBackend)
	require.False(t, cfg.MigrateOnStart)
	require.Equal(t, 5, cfg.PGMaxConns)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SYMBOLS", " tsla, ,NVDA ,")
	t.Setenv("PACING_DELAY_MS", "0")
	t.Setenv("FETCH_TIMEOUT_MS", "2500")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("ALPHA_VANTAGE_KEY", "demo")

	cfg := Load()
	require.Equal(t, []string{"tsla", "NVDA"}, cfg.Symbols)
	require.Equal(t, time.Duration(0), cfg.PacingDelay)
	require.Equal(t, 2500*time.Millisecond, cfg.FetchTimeout)
	require.True(t, cfg.MigrateOnStart)
	require.Equal(t, "demo", cfg.AlphaVantageKey)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("STORE_TIMEOUT_MS", "soon")
	require.Equal(t, 5*time.Second, Load().StoreTimeout)
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gist/feedsync/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.LoadFiles()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", cfg.BaseURL)
	require.Equal(t, "", cfg.SyncURL)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "s", cfg.TimestampUnit)
	require.Equal(t, 20*time.Second, cfg.RequestTimeout)
	require.Equal(t, 10*time.Minute, cfg.SyncTimeout)
	require.Equal(t, int64(8), cfg.MaxInFlight)
	require.Equal(t, "default", cfg.IPStack)
	require.Zero(t, cfg.RequestsPerSecond)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("FEEDSYNC_BASE_URL", "https://feeds.example.com")
	t.Setenv("FEEDSYNC_ADDR", ":9999")
	t.Setenv("FEEDSYNC_LOG_LEVEL", "debug")
	t.Setenv("FEEDSYNC_TIMESTAMP_UNIT", "ms")
	t.Setenv("FEEDSYNC_SYNC_TIMEOUT", "30s")

	cfg, err := config.LoadFiles()
	require.NoError(t, err)
	require.Equal(t, "https://feeds.example.com", cfg.BaseURL)
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "ms", cfg.TimestampUnit)
	require.Equal(t, 30*time.Second, cfg.SyncTimeout)
}

func TestLoad_HCLFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feedsync.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url = "https://file.example.com"
auto_sync_schedule = "@every 1h"
time_zone = "Europe/Berlin"
max_in_flight = 2
`), 0o600))
	t.Setenv("FEEDSYNC_TIME_ZONE", "Asia/Tokyo")

	cfg, err := config.LoadFiles(path, filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	require.Equal(t, "https://file.example.com", cfg.BaseURL)
	require.Equal(t, "@every 1h", cfg.AutoSyncSchedule)
	require.Equal(t, int64(2), cfg.MaxInFlight)
	require.Equal(t, "Asia/Tokyo", cfg.TimeZone)
}

func TestValidate(t *testing.T) {
	base, err := config.LoadFiles()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"base url scheme", func(c *config.Config) { c.BaseURL = "ftp://x" }},
		{"base url host", func(c *config.Config) { c.BaseURL = "http://" }},
		{"sync url scheme", func(c *config.Config) { c.SyncURL = "http://x/sync" }},
		{"timestamp unit", func(c *config.Config) { c.TimestampUnit = "ns" }},
		{"ip stack", func(c *config.Config) { c.IPStack = "ipx" }},
		{"timeout", func(c *config.Config) { c.RequestTimeout = 0 }},
		{"in flight", func(c *config.Config) { c.MaxInFlight = 0 }},
		{"negative rate", func(c *config.Config) { c.RequestsPerSecond = -1 }},
		{"node id", func(c *config.Config) { c.NodeID = 1024 }},
		{"time zone", func(c *config.Config) { c.TimeZone = "Mars/Olympus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}

	t.Setenv("FEEDSYNC_IP_STACK", "ipv9")
	_, err = config.LoadFiles()
	require.Error(t, err)
}

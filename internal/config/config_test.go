package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "lottery.db", cfg.Database.DSN)
	assert.Equal(t, DefaultScrapeTimeout, cfg.Scraper.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Scraper.TimeoutDuration())
	assert.Empty(t, cfg.Scraper.Cron)
}

func TestLoadConfigFromYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 9090
  mode: debug
database:
  driver: postgres
  dsn: postgres://u:p@localhost:5432/lottery
  conn_max_lifetime: 30m
scraper:
  url: https://example.com/lotto
  timeout: 10
  cron: "@every 12h"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("LOTTERY_SCRAPE_URL", "https://override.example.com")
	t.Setenv("LOTTERY_SERVER_PORT", "7070")

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "https://override.example.com", cfg.Scraper.URL)
	assert.Equal(t, 10*time.Second, cfg.Scraper.TimeoutDuration())
	assert.Equal(t, "@every 12h", cfg.Scraper.Cron)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("LOTTERY_DB_DRIVER", "oracle")
	_, err := LoadConfigFrom(t.TempDir())
	assert.Error(t, err)
}

func TestValidateFixesNonPositiveTimeout(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 1},
		Database: DatabaseConfig{Driver: "sqlite", DSN: "x.db"},
		Scraper:  ScraperConfig{Timeout: 0},
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultScrapeTimeout, cfg.Scraper.Timeout)
}

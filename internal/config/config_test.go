package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "SITES_PATH", "SCRAPE_TIMEOUT", "RESPECT_ROBOTS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "sites.yaml", cfg.SitesPath)
	assert.Equal(t, 10*time.Second, cfg.ScrapeTimeout)
	assert.False(t, cfg.RespectRobots)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", " postgres://localhost/recipes ")
	t.Setenv("SCRAPE_TIMEOUT", "3s")
	t.Setenv("RESPECT_ROBOTS", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres://localhost/recipes", cfg.DatabaseURL)
	assert.Equal(t, 3*time.Second, cfg.ScrapeTimeout)
	assert.True(t, cfg.RespectRobots)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	for key, value := range map[string]string{
		"SCRAPE_TIMEOUT": "soon",
		"RESPECT_ROBOTS": "maybe",
		"LOG_LEVEL":      "loud",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sites.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSites(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `
sites:
  - host: WWW.Example.com
    adapter: schema_org
  - host: recipes.example.org
`)
	sites, err := LoadSites(path)
	require.NoError(t, err)
	assert.Equal(t, []Site{
		{Host: "www.example.com", Adapter: AdapterSchemaOrg},
		{Host: "recipes.example.org", Adapter: AdapterSchemaOrg},
	}, sites)
	assert.Equal(t, []string{"www.example.com", "recipes.example.org"}, Hosts(sites))
}

func TestLoadSites_MissingFile(t *testing.T) {
	t.Parallel()

	sites, err := LoadSites(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, sites)
}

func TestLoadSites_Errors(t *testing.T) {
	t.Parallel()

	for name, content := range map[string]string{
		"bad yaml":        "sites: [",
		"unknown adapter": "sites:\n  - host: a.example\n    adapter: magic\n",
		"missing host":    "sites:\n  - adapter: schema_org\n",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadSites(writeFile(t, content))
			assert.Error(t, err)
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(nil, filepath.Join(t.TempDir(), "missing.env"), env(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, DefaultCatalog, cfg.CatalogPath)
	assert.Equal(t, DefaultCORSOrigins, cfg.CORSOrigins)
}

func TestLoad_Precedence(t *testing.T) {
	// GIVEN: .env sets every key, the environment overrides two, a flag one
	dotenv := writeFile(t, ".env", `
RENTAL_PORT=9000
RENTAL_DB=dotenv.db
RENTAL_CATALOG=dotenv.yaml
RENTAL_CORS_ORIGINS=http://a.example
`)
	vars := env(map[string]string{
		"RENTAL_DB":           "env.db",
		"RENTAL_CORS_ORIGINS": "http://b.example, http://c.example",
	})

	// WHEN: Loading with -port
	cfg, err := load([]string{"-port", "3000"}, dotenv, vars)
	require.NoError(t, err)

	// THEN: Each key comes from its highest-priority source
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "env.db", cfg.DBPath)
	assert.Equal(t, "dotenv.yaml", cfg.CatalogPath)
	assert.Equal(t, []string{"http://b.example", "http://c.example"}, cfg.CORSOrigins)
}

func TestLoad_EmptyCatalogDisablesSeeding(t *testing.T) {
	cfg, err := load([]string{"-catalog", ""}, filepath.Join(t.TempDir(), "none"), env(nil))
	require.NoError(t, err)
	assert.Empty(t, cfg.CatalogPath)
}

func TestLoad_Invalid(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none")

	_, err := load(nil, missing, env(map[string]string{"RENTAL_PORT": "http"}))
	assert.ErrorContains(t, err, "invalid RENTAL_PORT")

	_, err = load([]string{"-port", "70000"}, missing, env(nil))
	assert.ErrorContains(t, err, "port out of range")

	_, err = load([]string{"-db", ""}, missing, env(nil))
	assert.ErrorContains(t, err, "database path is required")

	_, err = load([]string{"-nope"}, missing, env(nil))
	assert.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	seed, err := LoadCatalog(filepath.Join("..", "catalog.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Stihl", "Werner", "DeWalt", "Ridgid"}, seed.Brands)
	require.Len(t, seed.ToolTypes, 3)
	ladder := seed.ToolTypes[0]
	assert.Equal(t, "Ladder", ladder.Name)
	assert.Equal(t, "1.99", ladder.DailyCharge)
	assert.True(t, ladder.WeekdayCharge)
	assert.True(t, ladder.WeekendCharge)
	assert.False(t, ladder.HolidayCharge)
	require.Len(t, seed.Tools, 4)
	assert.Equal(t, "JAKR", seed.Tools[3].Code)
	assert.Equal(t, "Ridgid", seed.Tools[3].Brand)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to open catalog")

	typo := writeFile(t, "typo.yaml", `
tool_types:
  - name: Ladder
    daily_charge: "1.99"
    weekend_charges: true
`)
	_, err = LoadCatalog(typo)
	assert.ErrorContains(t, err, "failed to parse catalog")
}

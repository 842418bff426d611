package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chtemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chtemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "listing-engine.db", cfg.Store.Path)
	assert.Equal(t, 30, cfg.Catalog.TimeoutSecs)
	assert.Equal(t, 3, cfg.Catalog.MaxRetries)
	assert.InDelta(t, 10, cfg.Catalog.RatePerSec, 0.001)
	assert.Equal(t, 9, cfg.Filter.PageSize)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chtemp(t)

	yaml := `
catalog:
  base_url: https://api.example.com
  auth_token: sekrit
store:
  driver: postgres
  database_url: postgres://localhost/engine
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Catalog.BaseURL)
	assert.Equal(t, "sekrit", cfg.Catalog.AuthToken)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := chtemp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("catalog: ["), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("catalog scope requires base url", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		assert.Error(t, cfg.Validate("catalog"))
		cfg.Catalog.BaseURL = "https://api.example.com"
		assert.NoError(t, cfg.Validate("catalog"))
	})

	t.Run("postgres store requires database url", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		cfg.Store.Driver = "postgres"
		assert.Error(t, cfg.Validate("store"))
		cfg.Store.DatabaseURL = "postgres://localhost/engine"
		assert.NoError(t, cfg.Validate("store"))
	})

	t.Run("unknown scope passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, (&Config{}).Validate("other"))
	})
}

func TestInitLogger(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	})
	t.Run("console format", func(t *testing.T) {
		assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	})
	t.Run("bad level", func(t *testing.T) {
		assert.Error(t, InitLogger(LogConfig{Level: "loud", Format: "json"}))
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 20.0, cfg.Server.RenderRate)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.Refresh)
	assert.Equal(t, 5, cfg.Dashboard.LowStockThreshold)
	assert.Equal(t, "7d", cfg.Dashboard.Range)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "anacreon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://shop.example/api/v1
dashboard:
  refresh: 1m
  range: 30d
logging:
  level: debug
`), 0o644))
	t.Setenv("ANACREON_SERVER_ADDR", ":9090")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/api/v1", cfg.API.BaseURL)
	assert.Equal(t, time.Minute, cfg.Dashboard.Refresh)
	assert.Equal(t, "30d", cfg.Dashboard.Range)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ANACREON_DASHBOARD_DEMO=true\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("ANACREON_DASHBOARD_DEMO") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Dashboard.Demo)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		API:       APIConfig{BaseURL: "", Timeout: 0},
		Server:    ServerConfig{MemoSize: 1},
		Dashboard: DashboardConfig{Refresh: time.Second, Range: "1y"},
		Logging:   LoggingConfig{Level: "loud"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "api.base_url is required")
	assert.ErrorContains(t, err, "api.timeout must be positive")
	assert.ErrorContains(t, err, `dashboard.range "1y"`)
	assert.ErrorContains(t, err, `logging.level "loud"`)
}

func TestLoadBadFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "reading config")
}

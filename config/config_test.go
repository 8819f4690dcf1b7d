package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "/data/companies.json", cfg.SnapshotPath)
	assert.Equal(t, 60, cfg.StatusRefreshSeconds)
	assert.Equal(t, 120, cfg.SessionIdleMinutes)
	assert.Empty(t, cfg.SnapshotFile)
	assert.Empty(t, cfg.StaticDir)
	assert.Equal(t, int32(1000), cfg.GeminiMaxOutputTokens)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.InDelta(t, 0.6, cfg.GeminiTemperature, 0.0001)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.IsProduction())
}

func TestGetResourcePath(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/app")

	assert.Equal(t, "/srv/app/resources/public", GetResourcePath(PUBLIC_RESOURCE_DIR))
}

func TestConfig_PublicDir(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/app")

	assert.Equal(t, "/srv/app/resources/public", (&Config{}).PublicDir())
	assert.Equal(t, "/var/www", (&Config{StaticDir: "/var/www"}).PublicDir())
}

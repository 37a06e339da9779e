package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.Cache.RedisAddr)
	assert.Equal(t, 5, cfg.RateLimit.Capacity)
	assert.Equal(t, time.Minute, cfg.RateLimit.Refill)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LOANCATALOG_SERVER_ADDR", ":9090")
	t.Setenv("LOANCATALOG_CACHE_REDIS_ADDR", "localhost:6379")
	t.Setenv("LOANCATALOG_RATE_LIMIT_CAPACITY", "20")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 20, cfg.RateLimit.Capacity)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("log:\n  level: debug\n  format: json\nrate_limit:\n  refill: 30s\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Refill)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("LOANCATALOG_LOG_FORMAT", "xml")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

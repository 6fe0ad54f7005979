package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with no SUSTAINABUY_* variables visible
func isolate(t *testing.T) string {
	t.Helper()

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "SUSTAINABUY_") {
			t.Setenv(key, "")
		}
	}

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// unsetEnv removes key for the rest of the test and restores it afterwards
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Database.DSN)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 100, cfg.RateLimit.PerIP)
	assert.Equal(t, 50, cfg.Search.ProductLimit)
	assert.Equal(t, 4, cfg.Search.RecommendationCount)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SUSTAINABUY_SERVER_PORT", "9090")
	t.Setenv("SUSTAINABUY_SERVER_ENVIRONMENT", "production")
	t.Setenv("SUSTAINABUY_SERVER_ALLOWED_ORIGINS", "https://sustainabuy.app,https://staging.sustainabuy.app")
	t.Setenv("SUSTAINABUY_DATABASE_DRIVER", "postgres")
	t.Setenv("SUSTAINABUY_DATABASE_DSN", "postgres://localhost/sustainabuy?sslmode=disable")
	t.Setenv("SUSTAINABUY_CACHE_TYPE", "redis")
	t.Setenv("SUSTAINABUY_CACHE_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SUSTAINABUY_CACHE_TTL", "24h")
	t.Setenv("SUSTAINABUY_RATELIMIT_PER_IP", "200")
	t.Setenv("SUSTAINABUY_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, []string{"https://sustainabuy.app", "https://staging.sustainabuy.app"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/sustainabuy?sslmode=disable", cfg.Database.DSN)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 200, cfg.RateLimit.PerIP)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)

	yaml := `server:
  port: "7070"
ratelimit:
  per_ip: 5
search:
  recommendation_count: 8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, 5, cfg.RateLimit.PerIP)
	assert.Equal(t, 8, cfg.Search.RecommendationCount)
	assert.Equal(t, 50, cfg.Search.ProductLimit)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := isolate(t)
	unsetEnv(t, "SUSTAINABUY_SERVER_PORT")
	t.Setenv("SUSTAINABUY_LOG_LEVEL", "debug")

	env := "SUSTAINABUY_SERVER_PORT=6060\nSUSTAINABUY_LOG_LEVEL=error\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "6060", cfg.Server.Port)
	// Variables already set win over .env
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "unknown database driver",
			env:  map[string]string{"SUSTAINABUY_DATABASE_DRIVER": "mysql"},
			want: "database driver",
		},
		{
			name: "unknown cache type",
			env:  map[string]string{"SUSTAINABUY_CACHE_TYPE": "memcached"},
			want: "cache type",
		},
		{
			name: "redis cache without url",
			env:  map[string]string{"SUSTAINABUY_CACHE_TYPE": "redis"},
			want: "Redis URL is required",
		},
		{
			name: "negative rate limit",
			env:  map[string]string{"SUSTAINABUY_RATELIMIT_PER_IP": "-1"},
			want: "rate limit",
		},
		{
			name: "unknown log format",
			env:  map[string]string{"SUSTAINABUY_LOG_FORMAT": "xml"},
			want: "log format",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidate_MissingDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Driver: "sqlite3"},
		Cache:    CacheConfig{Type: "memory"},
	}

	err := validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUSTAINABUY_DATABASE_DSN")
}

func TestLoadEnvFile_Missing(t *testing.T) {
	isolate(t)

	assert.NoError(t, loadEnvFile())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "HTTP_ADDR", "AIRPORT_DATA_PATH", "MODEL_PATH",
		"WEATHER_BASE_URL", "WEATHER_TIMEOUT", "WEATHER_RATE_LIMIT",
		"WEATHER_RATE_BURST", "WEATHER_CACHE_TTL", "CACHE_BACKEND",
		"HISTORY_DRIVER", "SQLITE_PATH",
		"PG_HOST", "PG_PORT", "PG_USER", "PG_PASSWORD", "PG_DB", "PG_SSLMODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "data/iata-icao.csv", cfg.AirportDataPath)
	assert.Equal(t, "data/delay_model.yaml", cfg.ModelPath)
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.WeatherBaseURL)
	assert.Equal(t, 10*time.Second, cfg.WeatherTimeout)
	assert.Equal(t, 5.0, cfg.WeatherRateLimit)
	assert.Equal(t, 10, cfg.WeatherRateBurst)
	assert.Equal(t, 5*time.Minute, cfg.WeatherCacheTTL)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, "postgres", cfg.HistoryDriver)
	assert.Equal(t, "localhost", cfg.PGHost)
	assert.Equal(t, "5432", cfg.PGPort)
	assert.Equal(t, "postgres", cfg.PGUser)
	assert.Equal(t, "", cfg.PGPassword)
	assert.Equal(t, "skycast", cfg.PGDatabase)
	assert.Equal(t, "disable", cfg.PGSSLMode)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("WEATHER_TIMEOUT", "3s")
	t.Setenv("HISTORY_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/test.db")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("PG_HOST", "db.internal")
	t.Setenv("PG_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.WeatherTimeout)
	assert.Equal(t, "sqlite", cfg.HistoryDriver)
	assert.Equal(t, "/tmp/test.db", cfg.SqlitePath)
	assert.Equal(t, "redis", cfg.CacheBackend)
	assert.Equal(t, "db.internal", cfg.PGHost)
	assert.Equal(t, "hunter2", cfg.PGPassword)
}

func TestLoad_InvalidHistoryDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("HISTORY_DRIVER", "mongodb")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HISTORY_DRIVER")
}

func TestLoad_InvalidCacheBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_BACKEND")
}

func TestLoad_InvalidWeatherTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHER_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

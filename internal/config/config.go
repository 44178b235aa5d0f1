package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	AppEnv   string
	HTTPAddr string

	// Reference data and model artifact locations.
	AirportDataPath string
	ModelPath       string

	// Weather provider configuration.
	WeatherBaseURL   string
	WeatherTimeout   time.Duration
	WeatherRateLimit float64
	WeatherRateBurst int
	WeatherCacheTTL  time.Duration

	// Cache backend: "memory" or "redis".
	CacheBackend string

	// History store: "postgres" (sqlx) or "sqlite" (GORM, embedded file).
	HistoryDriver string
	SqlitePath    string

	// Postgres connection settings, used when HistoryDriver is "postgres".
	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string
	PGSSLMode  string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	weatherTimeout, err := parseDuration("WEATHER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	weatherCacheTTL, err := parseDuration("WEATHER_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:           envOrDefault("APP_ENV", "development"),
		HTTPAddr:         envOrDefault("HTTP_ADDR", ":8080"),
		AirportDataPath:  envOrDefault("AIRPORT_DATA_PATH", "data/iata-icao.csv"),
		ModelPath:        envOrDefault("MODEL_PATH", "data/delay_model.yaml"),
		WeatherBaseURL:   envOrDefault("WEATHER_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		WeatherTimeout:   weatherTimeout,
		WeatherRateLimit: parseFloat("WEATHER_RATE_LIMIT", 5),
		WeatherRateBurst: parseInt("WEATHER_RATE_BURST", 10),
		WeatherCacheTTL:  weatherCacheTTL,
		CacheBackend:     envOrDefault("CACHE_BACKEND", "memory"),
		HistoryDriver:    envOrDefault("HISTORY_DRIVER", "postgres"),
		SqlitePath:       envOrDefault("SQLITE_PATH", "skycast.db"),
		PGHost:           envOrDefault("PG_HOST", "localhost"),
		PGPort:           envOrDefault("PG_PORT", "5432"),
		PGUser:           envOrDefault("PG_USER", "postgres"),
		PGPassword:       os.Getenv("PG_PASSWORD"),
		PGDatabase:       envOrDefault("PG_DB", "skycast"),
		PGSSLMode:        envOrDefault("PG_SSLMODE", "disable"),
	}

	if cfg.WeatherBaseURL == "" {
		return nil, errors.New("WEATHER_BASE_URL is required")
	}
	if cfg.CacheBackend != "memory" && cfg.CacheBackend != "redis" {
		return nil, fmt.Errorf("invalid CACHE_BACKEND %q: must be memory or redis", cfg.CacheBackend)
	}
	if cfg.HistoryDriver != "postgres" && cfg.HistoryDriver != "sqlite" {
		return nil, fmt.Errorf("invalid HISTORY_DRIVER %q: must be postgres or sqlite", cfg.HistoryDriver)
	}
	if cfg.WeatherRateLimit <= 0 {
		return nil, errors.New("WEATHER_RATE_LIMIT must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func parseFloat(key string, def float64) float64 {
	if s := os.Getenv(key); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}

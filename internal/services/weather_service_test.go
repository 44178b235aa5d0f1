package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"skycast/internal/common"
	"skycast/internal/config"
	"skycast/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherTestConfig(baseURL string) *config.Config {
	return &config.Config{
		WeatherBaseURL:   baseURL,
		WeatherTimeout:   2 * time.Second,
		WeatherRateLimit: 100,
		WeatherRateBurst: 100,
		WeatherCacheTTL:  time.Minute,
	}
}

func newWeatherServiceForTest(t *testing.T, handler http.HandlerFunc) (*WeatherService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewWeatherService(
		weatherTestConfig(server.URL),
		common.NewCacheService(300, 600),
		metrics.NewMetricsRegistryForTesting(),
	)
	return svc, server
}

func TestCurrentSeverity_FetchesAndNormalizes(t *testing.T) {
	svc, _ := newWeatherServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "40.6413", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-73.7781", r.URL.Query().Get("longitude"))
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))

		fmt.Fprint(w, `{"current_weather":{"weathercode":95,"temperature":12.5}}`)
	})

	sev, err := svc.CurrentSeverity(context.Background(), 40.6413, -73.7781)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, sev, 1e-9)
}

func TestCurrentSeverity_CachesByCoordinate(t *testing.T) {
	var calls int32
	svc, _ := newWeatherServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"current_weather":{"weathercode":0}}`)
	})

	ctx := context.Background()
	_, err := svc.CurrentSeverity(ctx, 40.6413, -73.7781)
	require.NoError(t, err)
	_, err = svc.CurrentSeverity(ctx, 40.6413, -73.7781)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCurrentSeverity_DistinctCoordinatesNotShared(t *testing.T) {
	var calls int32
	svc, _ := newWeatherServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"current_weather":{"weathercode":0}}`)
	})

	ctx := context.Background()
	_, err := svc.CurrentSeverity(ctx, 40.6413, -73.7781)
	require.NoError(t, err)
	_, err = svc.CurrentSeverity(ctx, 33.9416, -118.4085)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCurrentSeverity_UpstreamError(t *testing.T) {
	svc, _ := newWeatherServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	})

	_, err := svc.CurrentSeverity(context.Background(), 40.6413, -73.7781)
	assert.ErrorIs(t, err, ErrWeatherUnavailable)
}

func TestCurrentSeverity_MalformedBody(t *testing.T) {
	svc, _ := newWeatherServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	_, err := svc.CurrentSeverity(context.Background(), 40.6413, -73.7781)
	assert.ErrorIs(t, err, ErrWeatherUnavailable)
}

func TestCurrentSeverity_ProviderUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	svc := NewWeatherService(
		weatherTestConfig(server.URL),
		common.NewCacheService(300, 600),
		metrics.NewMetricsRegistryForTesting(),
	)

	_, err := svc.CurrentSeverity(context.Background(), 40.6413, -73.7781)
	assert.ErrorIs(t, err, ErrWeatherUnavailable)
}

func TestCurrentSeverity_FailuresNotCached(t *testing.T) {
	var calls int32
	svc, _ := newWeatherServiceForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"current_weather":{"weathercode":0}}`)
	})

	ctx := context.Background()
	_, err := svc.CurrentSeverity(ctx, 40.6413, -73.7781)
	require.Error(t, err)

	sev, err := svc.CurrentSeverity(ctx, 40.6413, -73.7781)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sev)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

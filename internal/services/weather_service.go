package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"skycast/internal/common"
	"skycast/internal/config"
	"skycast/internal/metrics"

	"golang.org/x/time/rate"
)

// WeatherProvider yields the normalized weather severity at a coordinate.
type WeatherProvider interface {
	CurrentSeverity(ctx context.Context, lat, lon float64) (float64, error)
}

// WeatherService fetches current conditions from an Open-Meteo style
// endpoint and converts the condition code to a severity in [0,1].
// Severities are cached per rounded coordinate; outbound calls go through
// a rate limiter so a burst of predictions cannot hammer the provider.
type WeatherService struct {
	baseURL string
	client  *http.Client
	cache   common.CacheInterface
	limiter *rate.Limiter
	ttl     time.Duration
	metrics *metrics.MetricsRegistry
}

var _ WeatherProvider = (*WeatherService)(nil)

func NewWeatherService(cfg *config.Config, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *WeatherService {
	return &WeatherService{
		baseURL: cfg.WeatherBaseURL,
		client:  &http.Client{Timeout: cfg.WeatherTimeout},
		cache:   cache,
		limiter: rate.NewLimiter(rate.Limit(cfg.WeatherRateLimit), cfg.WeatherRateBurst),
		ttl:     cfg.WeatherCacheTTL,
		metrics: metricsReg,
	}
}

type openMeteoResponse struct {
	CurrentWeather struct {
		WeatherCode int `json:"weathercode"`
	} `json:"current_weather"`
}

// CurrentSeverity returns the cached severity for the coordinate, fetching
// from the provider on a miss. Fetch failures wrap ErrWeatherUnavailable
// and are never cached.
func (s *WeatherService) CurrentSeverity(ctx context.Context, lat, lon float64) (float64, error) {
	key := fmt.Sprintf("WX_%.2f_%.2f", lat, lon)

	fetched := false
	val, err := s.cache.GetOrSet(key, s.ttl, func() (any, error) {
		fetched = true
		s.metrics.CacheMissesTotal.WithLabelValues("WX").Inc()
		return s.fetchSeverity(ctx, lat, lon)
	})
	if err != nil {
		return 0, err
	}
	if !fetched {
		s.metrics.CacheHitsTotal.WithLabelValues("WX").Inc()
	}

	// The Redis backend round-trips values through JSON, which hands
	// numbers back as float64 as well.
	sev, ok := val.(float64)
	if !ok {
		return s.fetchSeverity(ctx, lat, lon)
	}
	return sev, nil
}

func (s *WeatherService) fetchSeverity(ctx context.Context, lat, lon float64) (float64, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}

	url := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&current_weather=true", s.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	s.metrics.WeatherFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.WeatherFetchesTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.metrics.WeatherFetchesTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("%w: unexpected status %d", ErrWeatherUnavailable, resp.StatusCode)
	}

	var body openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		s.metrics.WeatherFetchesTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("%w: decode response: %v", ErrWeatherUnavailable, err)
	}

	s.metrics.WeatherFetchesTotal.WithLabelValues("ok").Inc()
	return SeverityForCode(body.CurrentWeather.WeatherCode), nil
}

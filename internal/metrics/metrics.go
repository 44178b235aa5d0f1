package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Skycast
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Business Metrics
	PredictionsTotal     prometheus.CounterVec
	WeatherFetchesTotal  prometheus.CounterVec
	WeatherFetchDuration prometheus.Histogram
	CacheHitsTotal       prometheus.CounterVec
	CacheMissesTotal     prometheus.CounterVec
	HistoryInsertsTotal  prometheus.CounterVec
}

// NewMetricsRegistry initializes metrics on the default Prometheus registerer.
func NewMetricsRegistry() *MetricsRegistry {
	return newRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsRegistryForTesting uses an isolated registerer so tests can
// build any number of registries without duplicate-registration panics.
func NewMetricsRegistryForTesting() *MetricsRegistry {
	return newRegistry(prometheus.NewRegistry())
}

func newRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skycast_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skycast_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skycast_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Business Metrics
		PredictionsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skycast_predictions_total",
				Help: "Total delay predictions served, by source (model or placeholder)",
			},
			[]string{"source"},
		),
		WeatherFetchesTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skycast_weather_fetches_total",
				Help: "Total weather provider calls by outcome",
			},
			[]string{"outcome"},
		),
		WeatherFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "skycast_weather_fetch_duration_seconds",
				Help:    "Weather provider call latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		CacheHitsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skycast_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skycast_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		HistoryInsertsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skycast_history_inserts_total",
				Help: "Total past-query persistence attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

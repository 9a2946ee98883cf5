package http

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRegistry holds the Prometheus metrics for the scoring API.
type MetricsRegistry struct {
	RankRequests *prometheus.CounterVec
	RankDuration prometheus.Histogram
	RankTiers    *prometheus.CounterVec
	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
	RateLimited  prometheus.Counter

	registry *prometheus.Registry
}

// NewMetricsRegistry creates and registers all API metrics on a private
// registry, keeping tests independent of the global default.
func NewMetricsRegistry() *MetricsRegistry {
	m := &MetricsRegistry{
		RankRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniscore_rank_requests_total",
				Help: "Total rank requests by outcome",
			},
			[]string{"outcome"},
		),
		RankDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "uniscore_rank_duration_seconds",
				Help:    "Rank request duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
		),
		RankTiers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniscore_rank_tiers_total",
				Help: "Rank results by assigned tier",
			},
			[]string{"tier"},
		),
		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "uniscore_cache_hits_total",
				Help: "Result cache hits",
			},
		),
		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "uniscore_cache_misses_total",
				Help: "Result cache misses",
			},
		),
		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "uniscore_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RankRequests, m.RankDuration, m.RankTiers,
		m.CacheHits, m.CacheMisses, m.RateLimited,
	)
	return m
}

// Registry exposes the underlying registry for the /metrics handler and
// for test scraping.
func (m *MetricsRegistry) Registry() *prometheus.Registry {
	return m.registry
}

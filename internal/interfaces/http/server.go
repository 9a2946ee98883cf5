// Package http exposes the scoring engine over a JSON API: /v1/rank,
// /v1/rank/pillars/{index}, /v1/tiers, plus /health and /metrics. The
// server carries no scoring logic; it parses requests, consults the
// optional result cache, and renders engine output.
package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/uniscore/uniscore/internal/cache"
	"github.com/uniscore/uniscore/internal/config"
	"github.com/uniscore/uniscore/internal/engine"
)

// Server is the HTTP API surface over the scoring engine.
type Server struct {
	engine  *engine.Engine
	cache   cache.ResultCache
	metrics *MetricsRegistry
	cfg     config.ServerConfig
	httpSrv *http.Server
}

// NewServer assembles the router and middleware chain. The cache may be
// nil, in which case every request hits the engine.
func NewServer(eng *engine.Engine, resultCache cache.ResultCache, cfg config.ServerConfig) *Server {
	s := &Server{
		engine:  eng,
		cache:   resultCache,
		metrics: NewMetricsRegistry(),
		cfg:     cfg,
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/v1").Subrouter()
	api.Use(withRateLimit(limiter, s.metrics))
	api.HandleFunc("/rank", s.handleRank).Methods(http.MethodGet)
	api.HandleFunc("/rank/pillars/{index}", s.handleExplainPillar).Methods(http.MethodGet)
	api.HandleFunc("/tiers", s.handleTiers).Methods(http.MethodGet)

	handler := withRequestID(withLogging(r))

	s.httpSrv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}
	return s
}

// Handler returns the fully wrapped handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Start blocks serving requests until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/uniscore/uniscore/internal/cache"
	"github.com/uniscore/uniscore/internal/engine"
	"github.com/uniscore/uniscore/internal/scoring"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}

func writeEngineError(w http.ResponseWriter, err error) {
	var e *engine.Error
	if errors.As(err, &e) {
		status := http.StatusBadRequest
		if e.Kind == engine.KindOutOfRange {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, errorResponse{Error: e.Msg, Kind: string(e.Kind), Field: e.Field})
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", err.Error())
}

// handleRank serves GET /v1/rank?name=...&country=...
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := r.URL.Query().Get("name")
	countryName := r.URL.Query().Get("country")

	result, err := s.rank(r.Context(), name, countryName)
	s.metrics.RankDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.RankRequests.WithLabelValues("error").Inc()
		writeEngineError(w, err)
		return
	}

	s.metrics.RankRequests.WithLabelValues("ok").Inc()
	s.metrics.RankTiers.WithLabelValues(string(result.Tier)).Inc()
	writeJSON(w, http.StatusOK, result)
}

// handleExplainPillar serves GET /v1/rank/pillars/{index}?name=...&country=...
func (s *Server) handleExplainPillar(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, string(engine.KindInvalidInput), "pillar index must be an integer")
		return
	}

	result, err := s.rank(r.Context(), r.URL.Query().Get("name"), r.URL.Query().Get("country"))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	entry, err := engine.ExplainPillar(result, index)
	if err != nil {
		var e *engine.Error
		if errors.As(err, &e) && e.Kind == engine.KindOutOfRange {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: e.Msg, Kind: string(e.Kind), Field: e.Field})
			return
		}
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// handleTiers serves GET /v1/tiers with the static tier table.
func (s *Server) handleTiers(w http.ResponseWriter, _ *http.Request) {
	type tierRow struct {
		Tier        string  `json:"tier"`
		Low         float64 `json:"low"`
		High        float64 `json:"high"`
		Description string  `json:"description"`
	}
	ranges := scoring.TierRanges()
	rows := make([]tierRow, 0, len(ranges))
	for _, r := range ranges {
		rows = append(rows, tierRow{
			Tier:        string(r.Tier),
			Low:         r.Low,
			High:        r.High,
			Description: r.Tier.Description(),
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleHealth serves GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// rank answers from the cache when one is configured, otherwise hits the
// engine and stores the result.
func (s *Server) rank(ctx context.Context, name, countryName string) (*engine.ScoringResult, error) {
	if s.cache == nil {
		return s.engine.Rank(ctx, name, countryName)
	}

	key := cache.Key(name, countryName)
	if result, ok := s.cache.Get(ctx, key); ok {
		s.metrics.CacheHits.Inc()
		return result, nil
	}
	s.metrics.CacheMisses.Inc()

	result, err := s.engine.Rank(ctx, name, countryName)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, result)
	return result, nil
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/synapsehq/synapse/internal/adapters/repository"
	service "github.com/synapsehq/synapse/internal/app"
	"github.com/synapsehq/synapse/internal/domain/affinity"
	"github.com/synapsehq/synapse/internal/domain/filter"
	"github.com/synapsehq/synapse/internal/domain/model"
)

// Dependencies required by the HTTP handlers. An interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Recommend scores a task and returns ranked candidates.
	Recommend(ctx context.Context, req service.RecommendRequest) ([]model.ScoredCandidate, error)

	// RefreshModel retrains the affinity model and swaps it into
	// service, returning the new snapshot version.
	RefreshModel(ctx context.Context) (string, error)

	// ModelReady reports whether an affinity snapshot is in service.
	ModelReady() bool

	// GetStats returns service statistics.
	GetStats() map[string]any
}

// Server wires HTTP routes for the business API.
type Server struct {
	recommendHandler *RecommendHandler
	refreshHandler   *RefreshHandler
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies, maxLimit int) *Server {
	return &Server{
		recommendHandler: NewRecommendHandler(deps, maxLimit),
		refreshHandler:   NewRefreshHandler(deps),
		healthHandler:    NewHealthHandler(deps),
		statsHandler:     NewStatsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/recommend", MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend"))
	mux.HandleFunc("/refresh-model", MetricsMiddleware(s.refreshHandler.HandleRefresh, "refresh-model"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// translateError maps core sentinel errors onto HTTP responses.
func translateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, filter.ErrInvalidTask):
		writeError(w, http.StatusBadRequest, "invalid_task", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, affinity.ErrModelNotTrained), errors.Is(err, affinity.ErrNoObservations):
		writeError(w, http.StatusServiceUnavailable, "model_not_ready", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

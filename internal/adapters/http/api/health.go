// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

type healthResponse struct {
	Status     string `json:"status"`
	ModelReady bool   `json:"model_ready"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HandleHealth handles GET /healthz requests. The service is degraded
// until an affinity snapshot is in service.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	resp := healthResponse{Status: "ok", ModelReady: h.deps.ModelReady()}
	if !resp.ModelReady {
		resp.Status = "degraded"
	}
	writeJSON(w, http.StatusOK, resp)
}

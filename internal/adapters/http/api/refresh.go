// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

type refreshResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RefreshHandler handles model refresh requests.
type RefreshHandler struct {
	deps Dependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps Dependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandleRefresh handles POST /refresh-model requests. Training runs
// synchronously; in-flight scoring keeps its snapshot until the swap.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	version, err := h.deps.RefreshModel(r.Context())
	if err != nil {
		translateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Status: "refreshed", Version: version})
}

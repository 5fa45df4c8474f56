// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	service "github.com/synapsehq/synapse/internal/app"
	"github.com/synapsehq/synapse/internal/domain/model"
)

// recommendRequest mirrors the POST /recommend schema. Either task_id
// or a non-empty skills list must be provided.
type recommendRequest struct {
	TaskID string             `json:"task_id,omitempty"`
	Skills []skillRequirement `json:"skills,omitempty"`
	Limit  int                `json:"limit,omitempty"`
}

type skillRequirement struct {
	Skill    string  `json:"skill"`
	MinLevel float64 `json:"min_level"`
}

type recommendResponse struct {
	Candidates []model.ScoredCandidate `json:"candidates"`
}

func (r recommendRequest) validate(maxLimit int) error {
	if r.TaskID == "" && len(r.Skills) == 0 {
		return fmt.Errorf("task_id or skills required: %w", ErrBadRequest)
	}
	for _, s := range r.Skills {
		if strings.TrimSpace(s.Skill) == "" {
			return fmt.Errorf("empty skill name: %w", ErrBadRequest)
		}
		if s.MinLevel < 0 || s.MinLevel > 1 {
			return fmt.Errorf("min_level %v out of [0,1]: %w", s.MinLevel, ErrBadRequest)
		}
	}
	if r.Limit < 0 || r.Limit > maxLimit {
		return fmt.Errorf("limit must be in [0,%d]: %w", maxLimit, ErrBadRequest)
	}
	return nil
}

// RecommendHandler handles recommendation requests.
type RecommendHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps Dependencies, maxLimit int) *RecommendHandler {
	return &RecommendHandler{deps: deps, maxLimit: maxLimit}
}

// HandleRecommend handles POST /recommend requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("decode body: %w", ErrBadRequest))
		return
	}
	if err := req.validate(h.maxLimit); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	requirements := make(map[model.SkillID]float64, len(req.Skills))
	for _, s := range req.Skills {
		requirements[model.SkillID(s.Skill)] = s.MinLevel
	}

	ranked, err := h.deps.Recommend(r.Context(), service.RecommendRequest{
		TaskID:       req.TaskID,
		Requirements: requirements,
		Limit:        req.Limit,
	})
	if err != nil {
		translateError(w, err)
		return
	}
	if ranked == nil {
		ranked = []model.ScoredCandidate{}
	}
	writeJSON(w, http.StatusOK, recommendResponse{Candidates: ranked})
}

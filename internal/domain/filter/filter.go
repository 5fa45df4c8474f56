// Package filter reduces the engineer population to the candidates
// eligible for a task.
package filter

import (
	"context"
	"fmt"

	"github.com/synapsehq/synapse/internal/domain/model"
)

// EvidenceSource answers whether an engineer has implicit evidence for a
// skill, derived from completed-task outcomes.
type EvidenceSource interface {
	HasEvidence(engineerID string, skill model.SkillID) bool
}

// Candidates returns the subset of pool that is available and has at
// least one explicit or implicit skill overlapping the task's
// requirements. Pool order is preserved. An empty result is a normal
// outcome, not an error.
//
// Returns ErrInvalidTask when the task's requirement set is empty.
func Candidates(ctx context.Context, task model.Task, pool []model.Engineer, evidence EvidenceSource) ([]model.Engineer, error) {
	if len(task.Requirements) == 0 {
		return nil, fmt.Errorf("filter task %q: %w", task.ID, ErrInvalidTask)
	}

	candidates := make([]model.Engineer, 0, len(pool))
	for _, eng := range pool {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("filter task %q: %w", task.ID, ctx.Err())
		}
		if !eng.Available {
			continue
		}
		if overlaps(eng, task, evidence) {
			candidates = append(candidates, eng)
		}
	}
	return candidates, nil
}

// overlaps reports whether the engineer has any evidence, explicit or
// implicit, for at least one required skill.
func overlaps(eng model.Engineer, task model.Task, evidence EvidenceSource) bool {
	for skill := range task.Requirements {
		if eng.Explicit[skill] > 0 {
			return true
		}
		if evidence != nil && evidence.HasEvidence(eng.ID, skill) {
			return true
		}
	}
	return false
}

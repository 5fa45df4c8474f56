package engine

import (
	"context"
	"sync"

	"github.com/synapsehq/synapse/internal/domain/affinity"
	"github.com/synapsehq/synapse/internal/domain/model"
	"github.com/synapsehq/synapse/internal/domain/proficiency"
)

// scoreCandidates computes the feature triple for every candidate with
// a bounded fan-out. No candidate's features depend on another's, so
// workers write disjoint result slots and merge by position; the
// aggregator re-sorts afterwards, so scheduling order never leaks into
// the output.
func (e *Engine) scoreCandidates(
	ctx context.Context,
	task model.Task,
	candidates []model.Engineer,
	index *proficiency.Index,
	snapshot *affinity.Snapshot,
) ([]model.ScoredCandidate, error) {
	results := make([]model.ScoredCandidate, len(candidates))

	workers := e.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = e.scoreOne(task, candidates[idx], index, snapshot)
			}
		}()
	}

	var cancelled bool
feed:
	for idx := range candidates {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			cancelled = true
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled {
		return nil, ctx.Err()
	}
	return results, nil
}

// scoreOne computes {coverage, proficiency, affinity} for a single
// candidate. Pure over its inputs; safe to run concurrently.
func (e *Engine) scoreOne(
	task model.Task,
	eng model.Engineer,
	index *proficiency.Index,
	snapshot *affinity.Snapshot,
) model.ScoredCandidate {
	matched := 0
	for skill := range task.Requirements {
		if eng.Explicit[skill] > 0 || index.HasEvidence(eng.ID, skill) {
			matched++
		}
	}
	coverage := float64(matched) / float64(len(task.Requirements))

	proficiencyScore, belowMinimum := e.blender.TaskProficiency(eng, task, index)
	affinityScore := snapshot.Affinity(eng.ID, task.ID)

	return model.ScoredCandidate{
		EngineerID: eng.ID,
		Features: model.FeatureVector{
			Coverage:    model.Clamp01(coverage),
			Proficiency: proficiencyScore,
			Affinity:    affinityScore,
		},
		BelowMinimum: belowMinimum,
	}
}

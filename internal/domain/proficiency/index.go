// Package proficiency blends explicit skill claims with implicit
// evidence inferred from completed-task outcomes.
package proficiency

import (
	"math"
	"time"

	"github.com/synapsehq/synapse/internal/domain/model"
)

// Aggregation selects how per-skill outcome evidence is aggregated.
type Aggregation string

// Supported aggregation policies.
const (
	// AggregationMean is the plain arithmetic mean of success metrics.
	AggregationMean Aggregation = "mean"
	// AggregationRecency is a recency-weighted mean with exponential
	// half-life decay.
	AggregationRecency Aggregation = "recency"
)

// Default evidence index configuration constants.
const (
	defaultHalfLife = 90 * 24 * time.Hour
)

// Evidence is the aggregated implicit signal for one (engineer, skill)
// pair. Value is in [0,1]; Observations counts contributing outcomes.
type Evidence struct {
	Value        float64
	Observations int
}

// Index holds implicit per-(engineer, skill) evidence derived from the
// outcome history. It is built once per request and read-only afterwards.
type Index struct {
	aggregation Aggregation
	halfLife    time.Duration
	now         time.Time

	evidence map[string]map[model.SkillID]Evidence
}

// IndexOption applies a configuration option to the Index.
type IndexOption func(*Index)

// WithAggregation selects the evidence aggregation policy.
func WithAggregation(a Aggregation) IndexOption {
	return func(ix *Index) {
		if a == AggregationMean || a == AggregationRecency {
			ix.aggregation = a
		}
	}
}

// WithHalfLife sets the decay half-life used by recency aggregation.
func WithHalfLife(d time.Duration) IndexOption {
	return func(ix *Index) {
		if d > 0 {
			ix.halfLife = d
		}
	}
}

// WithReferenceTime pins the "now" used for recency decay. Intended for
// deterministic tests.
func WithReferenceTime(t time.Time) IndexOption {
	return func(ix *Index) {
		if !t.IsZero() {
			ix.now = t
		}
	}
}

// NewIndex aggregates the outcome history into per-(engineer, skill)
// implicit evidence. An outcome contributes to every skill its task
// required; tasks absent from the catalog contribute nothing.
func NewIndex(history []model.TaskOutcome, tasks map[string]model.Task, opts ...IndexOption) *Index {
	ix := &Index{
		aggregation: AggregationRecency,
		halfLife:    defaultHalfLife,
		now:         time.Now(),
		evidence:    make(map[string]map[model.SkillID]Evidence),
	}
	for _, opt := range opts {
		opt(ix)
	}

	type acc struct {
		weighted float64
		weight   float64
		count    int
	}
	sums := make(map[string]map[model.SkillID]*acc)

	for _, out := range history {
		task, ok := tasks[out.TaskID]
		if !ok {
			continue
		}
		w := ix.outcomeWeight(out)
		success := model.Clamp01(out.Success)
		perSkill := sums[out.EngineerID]
		if perSkill == nil {
			perSkill = make(map[model.SkillID]*acc)
			sums[out.EngineerID] = perSkill
		}
		for skill := range task.Requirements {
			a := perSkill[skill]
			if a == nil {
				a = &acc{}
				perSkill[skill] = a
			}
			a.weighted += w * success
			a.weight += w
			a.count++
		}
	}

	for engID, perSkill := range sums {
		out := make(map[model.SkillID]Evidence, len(perSkill))
		for skill, a := range perSkill {
			if a.weight <= 0 {
				continue
			}
			out[skill] = Evidence{
				Value:        model.Clamp01(a.weighted / a.weight),
				Observations: a.count,
			}
		}
		ix.evidence[engID] = out
	}

	return ix
}

// outcomeWeight returns the aggregation weight for a single outcome.
func (ix *Index) outcomeWeight(out model.TaskOutcome) float64 {
	if ix.aggregation == AggregationMean {
		return 1
	}
	age := ix.now.Sub(out.CompletedAt)
	if age <= 0 {
		return 1
	}
	return math.Pow(0.5, age.Hours()/ix.halfLife.Hours())
}

// Implicit returns the aggregated evidence for the pair, if any exists.
func (ix *Index) Implicit(engineerID string, skill model.SkillID) (Evidence, bool) {
	ev, ok := ix.evidence[engineerID][skill]
	return ev, ok
}

// HasEvidence reports whether any implicit evidence exists for the pair.
// It satisfies the candidate filter's EvidenceSource contract.
func (ix *Index) HasEvidence(engineerID string, skill model.SkillID) bool {
	ev, ok := ix.evidence[engineerID][skill]
	return ok && ev.Value > 0
}

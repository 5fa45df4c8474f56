// Package ranking combines candidate feature vectors into a single
// score and produces the final deterministic order.
package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/synapsehq/synapse/internal/domain/model"
)

// weightSumTolerance absorbs float error when checking that weights
// sum to 1.
const weightSumTolerance = 1e-6

// Weights define the relative importance of each feature. Each weight
// must lie in [0,1] and the three must sum to 1.
type Weights struct {
	Coverage    float64 `koanf:"weight_coverage" json:"coverage"`
	Proficiency float64 `koanf:"weight_proficiency" json:"proficiency"`
	Affinity    float64 `koanf:"weight_affinity" json:"affinity"`
}

// DefaultWeights returns the production weight distribution: required
// skills first, demonstrated proficiency second, latent affinity last.
func DefaultWeights() Weights {
	return Weights{
		Coverage:    0.6,
		Proficiency: 0.3,
		Affinity:    0.1,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Coverage + w.Proficiency + w.Affinity
}

// Validate checks the weight invariants, returning
// ErrInvalidWeightConfig on violation.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Coverage, w.Proficiency, w.Affinity} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("weight %v out of range: %w", v, ErrInvalidWeightConfig)
		}
	}
	if math.Abs(w.Sum()-1) > weightSumTolerance {
		return fmt.Errorf("weights sum to %v: %w", w.Sum(), ErrInvalidWeightConfig)
	}
	return nil
}

// Aggregator turns feature vectors into a ranked result.
type Aggregator struct {
	weights Weights
}

// NewAggregator validates the weights and returns an aggregator.
func NewAggregator(w Weights) (*Aggregator, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Aggregator{weights: w}, nil
}

// Combine collapses one feature vector into a combined score in [0,1].
func (a *Aggregator) Combine(f model.FeatureVector) float64 {
	score := a.weights.Coverage*f.Coverage +
		a.weights.Proficiency*f.Proficiency +
		a.weights.Affinity*f.Affinity
	return model.Clamp01(score)
}

// Rank fills in combined scores and rank positions, sorts by score
// descending with engineer id ascending as the tie-break, and truncates
// to topN when topN > 0. The input slice is not retained.
func (a *Aggregator) Rank(candidates []model.ScoredCandidate, topN int) []model.ScoredCandidate {
	ranked := make([]model.ScoredCandidate, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		ranked[i].Score = a.Combine(ranked[i].Features)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].EngineerID < ranked[j].EngineerID
	})

	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Package affinity trains and serves a latent-factor model of
// collaborative engineer/task affinity.
//
// Training happens off the scoring path and produces an immutable
// Snapshot. Serving is a read-only dot product over the snapshot's
// factor matrices; snapshots are replaced wholesale, never mutated.
package affinity

import (
	"sync/atomic"
	"time"

	"github.com/synapsehq/synapse/internal/domain/model"
)

// Snapshot is an immutable trained model: engineer and task factor
// vectors of fixed rank, per-entity biases, and the global mean of
// observed success metrics.
type Snapshot struct {
	version      string
	trainedAt    time.Time
	rank         int
	observations int
	globalMean   float64

	engineerIndex   map[string]int
	taskIndex       map[string]int
	engineerFactors [][]float64
	taskFactors     [][]float64
	engineerBias    []float64
	taskBias        []float64
}

// Version returns the snapshot's unique version identifier.
func (s *Snapshot) Version() string { return s.version }

// TrainedAt returns when training finished.
func (s *Snapshot) TrainedAt() time.Time { return s.trainedAt }

// Rank returns the latent dimensionality k.
func (s *Snapshot) Rank() int { return s.rank }

// Observations returns the number of distinct observed interactions the
// model was fitted on.
func (s *Snapshot) Observations() int { return s.observations }

// GlobalMean returns the mean observed success metric, which doubles as
// the neutral cold-start affinity.
func (s *Snapshot) GlobalMean() float64 { return s.globalMean }

// Affinity predicts the collaborative affinity between an engineer and a
// task, clamped to [0,1]. Either entity being absent from the trained
// snapshot yields the neutral global-mean affinity rather than a fault.
func (s *Snapshot) Affinity(engineerID, taskID string) float64 {
	u, uok := s.engineerIndex[engineerID]
	i, iok := s.taskIndex[taskID]
	if !uok || !iok {
		return model.Clamp01(s.globalMean)
	}

	pred := s.globalMean + s.engineerBias[u] + s.taskBias[i]
	pu := s.engineerFactors[u]
	qi := s.taskFactors[i]
	for f := 0; f < s.rank; f++ {
		pred += pu[f] * qi[f]
	}
	return model.Clamp01(pred)
}

// KnowsEngineer reports whether the engineer was observed at training.
func (s *Snapshot) KnowsEngineer(engineerID string) bool {
	_, ok := s.engineerIndex[engineerID]
	return ok
}

// KnowsTask reports whether the task was observed at training.
func (s *Snapshot) KnowsTask(taskID string) bool {
	_, ok := s.taskIndex[taskID]
	return ok
}

// Holder publishes the snapshot in service. Retraining swaps the
// pointer atomically; in-flight scoring keeps whatever snapshot it
// acquired at request start, so no request observes a partial update.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder creates an empty holder with no snapshot in service.
func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the snapshot in service, or ErrModelNotTrained when
// none has been published yet.
func (h *Holder) Current() (*Snapshot, error) {
	s := h.current.Load()
	if s == nil {
		return nil, ErrModelNotTrained
	}
	return s, nil
}

// Swap atomically publishes a new snapshot and returns the previous one,
// if any.
func (h *Holder) Swap(s *Snapshot) *Snapshot {
	return h.current.Swap(s)
}

// Ready reports whether a snapshot is in service.
func (h *Holder) Ready() bool {
	return h.current.Load() != nil
}

// Package engine orchestrates the scoring pipeline: candidate
// filtering, parallel feature computation, and ranking.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/synapsehq/synapse/internal/domain/affinity"
	"github.com/synapsehq/synapse/internal/domain/filter"
	"github.com/synapsehq/synapse/internal/domain/model"
	"github.com/synapsehq/synapse/internal/domain/proficiency"
	"github.com/synapsehq/synapse/internal/domain/ranking"
	"github.com/synapsehq/synapse/pkg/logger"
)

// Request carries everything one scoring call needs. The engine treats
// all of it as an immutable snapshot; materializing the data is the
// caller's concern.
type Request struct {
	// Task is the task being staffed. Its requirement set must be
	// non-empty.
	Task model.Task

	// Pool is the full engineer population to filter and score.
	Pool []model.Engineer

	// History is the completed-task outcome corpus used to derive
	// implicit skill evidence.
	History []model.TaskOutcome

	// Tasks resolves historical task ids to their requirements.
	Tasks map[string]model.Task

	// Snapshot is the affinity model in service. Nil means no model has
	// been trained yet.
	Snapshot *affinity.Snapshot

	// Weights combine the feature triple into the final score.
	Weights ranking.Weights

	// TopN truncates the ranked result when positive; zero returns the
	// full ranked set.
	TopN int
}

// Engine runs the scoring pipeline. It holds policy (blend curves,
// evidence aggregation, trainer settings) but no data; every call works
// on the snapshot handed to it.
type Engine struct {
	blender   *proficiency.Blender
	indexOpts []proficiency.IndexOption
	trainer   *affinity.Trainer
	workers   int
	logger    logger.Logger
}

// New creates an engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		blender: proficiency.NewBlender(),
		trainer: affinity.NewTrainer(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Get().Named("engine")
	}
	return e
}

// ScoreTask runs the full pipeline for one task and returns candidates
// ranked by combined score descending. An empty result is a normal
// outcome. Scoring is all-or-nothing: any error returns no partial
// result.
func (e *Engine) ScoreTask(ctx context.Context, req Request) ([]model.ScoredCandidate, error) {
	aggregator, err := ranking.NewAggregator(req.Weights)
	if err != nil {
		return nil, fmt.Errorf("score task %q: %w", req.Task.ID, err)
	}
	if req.Snapshot == nil {
		return nil, fmt.Errorf("score task %q: %w", req.Task.ID, affinity.ErrModelNotTrained)
	}

	start := time.Now()
	index := proficiency.NewIndex(req.History, req.Tasks, e.indexOpts...)

	candidates, err := filter.Candidates(ctx, req.Task, req.Pool, index)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		e.logger.Debug(ctx, "no eligible candidates", logger.String("task", req.Task.ID))
		return []model.ScoredCandidate{}, nil
	}

	scored, err := e.scoreCandidates(ctx, req.Task, candidates, index, req.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("score task %q: %w", req.Task.ID, err)
	}

	ranked := aggregator.Rank(scored, req.TopN)
	e.logger.Debug(ctx, "task scored",
		logger.String("task", req.Task.ID),
		logger.Int("pool", len(req.Pool)),
		logger.Int("candidates", len(candidates)),
		logger.Int("ranked", len(ranked)),
		logger.String("model_version", req.Snapshot.Version()),
		logger.Any("elapsed", time.Since(start)),
	)
	return ranked, nil
}

// TrainAffinityModel fits a fresh snapshot to the outcome history. It
// runs off the scoring path; callers decide when to swap the result
// into service.
func (e *Engine) TrainAffinityModel(ctx context.Context, history []model.TaskOutcome) (*affinity.Snapshot, error) {
	start := time.Now()
	snapshot, err := e.trainer.Train(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("train affinity model: %w", err)
	}
	e.logger.Info(ctx, "affinity model trained",
		logger.String("version", snapshot.Version()),
		logger.Int("rank", snapshot.Rank()),
		logger.Int("observations", snapshot.Observations()),
		logger.Any("elapsed", time.Since(start)),
	)
	return snapshot, nil
}

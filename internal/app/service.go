// Package service provides the long-lived application service that
// implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse/internal/adapters/repository"
	"github.com/synapsehq/synapse/internal/domain/affinity"
	"github.com/synapsehq/synapse/internal/domain/model"
	"github.com/synapsehq/synapse/internal/domain/ranking"
	"github.com/synapsehq/synapse/internal/engine"
	"github.com/synapsehq/synapse/internal/seed"
	"github.com/synapsehq/synapse/pkg/logger"
	"github.com/synapsehq/synapse/pkg/metrics"
)

// RecommendRequest asks for a ranked candidate list, either for a
// stored task (TaskID) or an ad-hoc requirement set.
type RecommendRequest struct {
	TaskID       string
	Requirements map[model.SkillID]float64
	Limit        int
}

// Service wires the talent store, the scoring engine, and the affinity
// model holder into the operations the API layer consumes.
type Service struct {
	mu      sync.Mutex
	started bool

	store   repository.Store
	engine  *engine.Engine
	model   *affinity.Holder
	weights ranking.Weights
	skills  *model.Catalog

	demoEngineers int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the talent-graph store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngine sets the scoring engine.
func WithEngine(e *engine.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithWeights sets the ranking weights used for every request.
func WithWeights(w ranking.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithDemoData seeds the store with a synthetic corpus of n engineers
// at startup.
func WithDemoData(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.demoEngineers = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		weights: ranking.DefaultWeights(),
		model:   affinity.NewHolder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes components, optionally seeds demo data, and trains
// the initial affinity snapshot from whatever history exists.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	if s.engine == nil {
		s.engine = engine.New()
	}
	if err := s.weights.Validate(); err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	if s.demoEngineers > 0 {
		if err := s.seedDemoData(ctx); err != nil {
			return fmt.Errorf("start service: %w", err)
		}
	}

	if _, err := s.RefreshModel(ctx); err != nil {
		if !errors.Is(err, affinity.ErrNoObservations) {
			return fmt.Errorf("start service: %w", err)
		}
		s.logger.Warn(ctx, "no outcome history; serving without affinity model until first refresh")
	}

	s.skills = s.buildCatalog(ctx)

	engineers, tasks, outcomes := s.store.Counts(ctx)
	metrics.UpdateCorpusSize(engineers, tasks, outcomes)
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("engineers", engineers),
		logger.Int("tasks", tasks),
		logger.Int("outcomes", outcomes),
		logger.Int("skills", s.skills.Len()),
		logger.Bool("model_ready", s.model.Ready()),
	)

	s.started = true
	return nil
}

// Stop marks the service stopped. Scoring holds no background
// goroutines, so there is nothing to drain.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

// Recommend scores a task against the current talent snapshot and
// returns the ranked candidates. The affinity snapshot acquired here is
// used for the whole request even if a refresh lands mid-flight.
func (s *Service) Recommend(ctx context.Context, req RecommendRequest) ([]model.ScoredCandidate, error) {
	task, err := s.resolveTask(ctx, req)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.model.Current()
	if err != nil {
		return nil, fmt.Errorf("recommend for task %q: %w", task.ID, err)
	}

	start := time.Now()
	ranked, err := s.engine.ScoreTask(ctx, engine.Request{
		Task:     task,
		Pool:     s.store.Engineers(ctx),
		History:  s.store.Outcomes(ctx),
		Tasks:    s.store.Tasks(ctx),
		Snapshot: snapshot,
		Weights:  s.weights,
		TopN:     req.Limit,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordRecommendation(float64(time.Since(start).Milliseconds()), len(ranked), len(ranked) == 0)
	return ranked, nil
}

// RefreshModel retrains the affinity model from the current outcome
// history and atomically swaps the snapshot into service.
func (s *Service) RefreshModel(ctx context.Context) (string, error) {
	start := time.Now()
	snapshot, err := s.engine.TrainAffinityModel(ctx, s.store.Outcomes(ctx))
	if err != nil {
		if !errors.Is(err, affinity.ErrNoObservations) {
			metrics.RecordTrainingFailure()
		}
		return "", err
	}

	s.model.Swap(snapshot)
	metrics.RecordTraining(float64(time.Since(start).Milliseconds()), snapshot.Observations(), snapshot.Rank())
	metrics.RecordModelSwap()
	return snapshot.Version(), nil
}

// ModelReady reports whether an affinity snapshot is in service.
func (s *Service) ModelReady() bool {
	return s.model.Ready()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	ctx := context.Background()
	engineers, tasks, outcomes := s.store.Counts(ctx)
	metrics.UpdateCorpusSize(engineers, tasks, outcomes)

	stats := map[string]any{
		"engineers":   engineers,
		"tasks":       tasks,
		"outcomes":    outcomes,
		"model_ready": s.model.Ready(),
		"weights":     s.weights,
	}
	if s.skills != nil {
		stats["skills"] = s.skills.Len()
	}
	if snapshot, err := s.model.Current(); err == nil {
		stats["model_version"] = snapshot.Version()
		stats["model_rank"] = snapshot.Rank()
		stats["model_observations"] = snapshot.Observations()
		stats["model_trained_at"] = snapshot.TrainedAt().UTC().Format(time.RFC3339)
	}
	return stats
}

// resolveTask loads the stored task or builds an ad-hoc one from the
// request's requirement set. Ad-hoc tasks get a fresh id, so the
// affinity model serves them its neutral cold-start value.
func (s *Service) resolveTask(ctx context.Context, req RecommendRequest) (model.Task, error) {
	if req.TaskID != "" {
		task, err := s.store.Task(ctx, req.TaskID)
		if err != nil {
			return model.Task{}, fmt.Errorf("recommend: %w", err)
		}
		return task, nil
	}
	if s.skills != nil {
		for skill := range req.Requirements {
			if !s.skills.Has(skill) {
				s.logger.Debug(ctx, "requirement names a skill absent from the corpus",
					logger.String("skill", string(skill)))
			}
		}
	}
	return model.Task{
		ID:           "adhoc-" + uuid.New().String(),
		Requirements: req.Requirements,
	}, nil
}

// buildCatalog collects every skill referenced by an engineer claim or a
// task requirement into the service's skill inventory.
func (s *Service) buildCatalog(ctx context.Context) *model.Catalog {
	seen := make(map[model.SkillID]bool)
	var skills []model.Skill

	add := func(id model.SkillID) {
		if !seen[id] {
			seen[id] = true
			skills = append(skills, model.Skill{ID: id, Name: string(id)})
		}
	}
	for _, eng := range s.store.Engineers(ctx) {
		for skill := range eng.Explicit {
			add(skill)
		}
	}
	for _, task := range s.store.Tasks(ctx) {
		for skill := range task.Requirements {
			add(skill)
		}
	}
	return model.NewCatalog(skills)
}

// seedDemoData populates the store with a deterministic synthetic
// corpus.
func (s *Service) seedDemoData(ctx context.Context) error {
	corpus := seed.NewGenerator(seed.WithEngineerCount(s.demoEngineers)).Generate()

	for _, task := range corpus.Tasks {
		if err := s.store.UpsertTask(ctx, task); err != nil {
			return err
		}
	}
	for _, eng := range corpus.Engineers {
		// RecordOutcome derives experience; don't double-count the
		// generator's precomputed value.
		eng.Experience = 0
		if err := s.store.UpsertEngineer(ctx, eng); err != nil {
			return err
		}
	}
	for _, outcome := range corpus.Outcomes {
		if err := s.store.RecordOutcome(ctx, outcome); err != nil {
			return err
		}
	}

	s.logger.Info(ctx, "seeded demo corpus",
		logger.Int("engineers", len(corpus.Engineers)),
		logger.Int("tasks", len(corpus.Tasks)),
		logger.Int("outcomes", len(corpus.Outcomes)),
	)
	return nil
}

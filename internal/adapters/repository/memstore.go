package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/synapsehq/synapse/internal/domain/model"
)

// MemStore implements Store with in-process maps guarded by a RWMutex.
// All reads copy; a snapshot handed out never changes under the caller.
type MemStore struct {
	mu        sync.RWMutex
	engineers map[string]model.Engineer
	tasks     map[string]model.Task
	outcomes  []model.TaskOutcome
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithEngineers preloads engineer records.
func WithEngineers(engineers ...model.Engineer) Option {
	return func(s *MemStore) {
		for _, eng := range engineers {
			s.engineers[eng.ID] = cloneEngineer(eng)
		}
	}
}

// WithTasks preloads task records.
func WithTasks(tasks ...model.Task) Option {
	return func(s *MemStore) {
		for _, task := range tasks {
			s.tasks[task.ID] = cloneTask(task)
		}
	}
}

// WithOutcomes preloads outcome history. Experience scores are not
// recomputed for preloaded history; preloaded engineers carry their own.
func WithOutcomes(outcomes ...model.TaskOutcome) Option {
	return func(s *MemStore) {
		s.outcomes = append(s.outcomes, outcomes...)
	}
}

// NewMemStore creates an empty in-memory store with options applied.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		engineers: make(map[string]model.Engineer),
		tasks:     make(map[string]model.Task),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engineers returns a copy of the engineer population sorted by id for
// deterministic downstream iteration.
func (s *MemStore) Engineers(_ context.Context) []model.Engineer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Engineer, 0, len(s.engineers))
	for _, eng := range s.engineers {
		out = append(out, cloneEngineer(eng))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Engineer returns one engineer by id.
func (s *MemStore) Engineer(_ context.Context, id string) (model.Engineer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	eng, ok := s.engineers[id]
	if !ok {
		return model.Engineer{}, fmt.Errorf("engineer %q: %w", id, ErrNotFound)
	}
	return cloneEngineer(eng), nil
}

// Task returns one task by id.
func (s *MemStore) Task(_ context.Context, id string) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return model.Task{}, fmt.Errorf("task %q: %w", id, ErrNotFound)
	}
	return cloneTask(task), nil
}

// Tasks returns a copy of all tasks keyed by id.
func (s *MemStore) Tasks(_ context.Context) map[string]model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.Task, len(s.tasks))
	for id, task := range s.tasks {
		out[id] = cloneTask(task)
	}
	return out
}

// Outcomes returns a copy of the outcome history in insertion order.
func (s *MemStore) Outcomes(_ context.Context) []model.TaskOutcome {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.TaskOutcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// UpsertEngineer creates or replaces an engineer record.
func (s *MemStore) UpsertEngineer(_ context.Context, eng model.Engineer) error {
	if eng.ID == "" {
		return fmt.Errorf("upsert engineer: %w", ErrMissingID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engineers[eng.ID] = cloneEngineer(eng)
	return nil
}

// UpsertTask creates or replaces a task record.
func (s *MemStore) UpsertTask(_ context.Context, task model.Task) error {
	if task.ID == "" {
		return fmt.Errorf("upsert task: %w", ErrMissingID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = cloneTask(task)
	return nil
}

// RecordOutcome appends an outcome and bumps the engineer's experience
// score, keeping it monotonically non-decreasing with completed tasks.
func (s *MemStore) RecordOutcome(_ context.Context, outcome model.TaskOutcome) error {
	if outcome.Success < 0 || outcome.Success > 1 {
		return fmt.Errorf("outcome success %v: %w", outcome.Success, ErrInvalidSuccess)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	eng, ok := s.engineers[outcome.EngineerID]
	if !ok {
		return fmt.Errorf("outcome engineer %q: %w", outcome.EngineerID, ErrUnknownRef)
	}
	if _, ok := s.tasks[outcome.TaskID]; !ok {
		return fmt.Errorf("outcome task %q: %w", outcome.TaskID, ErrUnknownRef)
	}

	s.outcomes = append(s.outcomes, outcome)
	eng.Experience++
	s.engineers[outcome.EngineerID] = eng
	return nil
}

// Counts returns the current population sizes.
func (s *MemStore) Counts(_ context.Context) (int, int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.engineers), len(s.tasks), len(s.outcomes)
}

func cloneEngineer(eng model.Engineer) model.Engineer {
	out := eng
	if eng.Explicit != nil {
		out.Explicit = make(map[model.SkillID]float64, len(eng.Explicit))
		for skill, level := range eng.Explicit {
			out.Explicit[skill] = level
		}
	}
	return out
}

func cloneTask(task model.Task) model.Task {
	out := task
	if task.Requirements != nil {
		out.Requirements = make(map[model.SkillID]float64, len(task.Requirements))
		for skill, minLevel := range task.Requirements {
			out.Requirements[skill] = minLevel
		}
	}
	return out
}

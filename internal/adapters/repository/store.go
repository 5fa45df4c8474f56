// Package repository defines the talent-graph store interface and
// errors. The scoring core never touches the store directly; it is
// handed immutable snapshots taken from it.
package repository

import (
	"context"

	"github.com/synapsehq/synapse/internal/domain/model"
)

// Store provides access to engineers, tasks, and outcome history.
// Read methods return defensive copies so callers hold a consistent,
// immutable view for the duration of a request.
type Store interface {
	// Engineers returns a snapshot of the engineer population.
	Engineers(ctx context.Context) []model.Engineer

	// Engineer returns one engineer by id, or ErrNotFound.
	Engineer(ctx context.Context, id string) (model.Engineer, error)

	// Task returns one task by id, or ErrNotFound.
	Task(ctx context.Context, id string) (model.Task, error)

	// Tasks returns a snapshot of all tasks keyed by id.
	Tasks(ctx context.Context) map[string]model.Task

	// Outcomes returns a snapshot of the outcome history.
	Outcomes(ctx context.Context) []model.TaskOutcome

	// UpsertEngineer creates or replaces an engineer record.
	UpsertEngineer(ctx context.Context, eng model.Engineer) error

	// UpsertTask creates or replaces a task record.
	UpsertTask(ctx context.Context, task model.Task) error

	// RecordOutcome appends a completed-task outcome and bumps the
	// engineer's derived experience score.
	RecordOutcome(ctx context.Context, outcome model.TaskOutcome) error

	// Counts returns the current population sizes.
	Counts(ctx context.Context) (engineers, tasks, outcomes int)
}

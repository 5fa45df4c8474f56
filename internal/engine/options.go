package engine

import (
	"github.com/synapsehq/synapse/internal/domain/affinity"
	"github.com/synapsehq/synapse/internal/domain/proficiency"
	"github.com/synapsehq/synapse/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithBlender sets the proficiency blender.
func WithBlender(b *proficiency.Blender) Option {
	return func(e *Engine) {
		if b != nil {
			e.blender = b
		}
	}
}

// WithIndexOptions sets the evidence-index options applied per request.
func WithIndexOptions(opts ...proficiency.IndexOption) Option {
	return func(e *Engine) {
		e.indexOpts = opts
	}
}

// WithTrainer sets the affinity trainer.
func WithTrainer(t *affinity.Trainer) Option {
	return func(e *Engine) {
		if t != nil {
			e.trainer = t
		}
	}
}

// WithWorkerCount bounds the per-request feature fan-out.
func WithWorkerCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

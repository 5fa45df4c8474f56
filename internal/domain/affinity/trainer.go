package affinity

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/synapsehq/synapse/internal/domain/model"
)

// Default training configuration constants. Learning rate and
// regularization follow the common biased-SVD baselines.
const (
	defaultRank           = 50
	defaultEpochs         = 20
	defaultLearningRate   = 0.005
	defaultRegularization = 0.02
	defaultInitStddev     = 0.1
	defaultRandomSeed     = 42
)

// Trainer fits a biased matrix-factorization model to the observed
// engineer x task interaction matrix via stochastic gradient descent.
// Missing entries are unobserved, not zero; only observed entries
// contribute to the reconstruction loss.
type Trainer struct {
	rank           int
	epochs         int
	learningRate   float64
	regularization float64
	initStddev     float64
	seed           int64
}

// Option applies a configuration option to the Trainer.
type Option func(*Trainer)

// WithRank sets the latent dimensionality k.
func WithRank(k int) Option {
	return func(t *Trainer) {
		if k > 0 {
			t.rank = k
		}
	}
}

// WithEpochs sets the number of SGD passes over the observations.
func WithEpochs(n int) Option {
	return func(t *Trainer) {
		if n > 0 {
			t.epochs = n
		}
	}
}

// WithLearningRate sets the SGD step size.
func WithLearningRate(lr float64) Option {
	return func(t *Trainer) {
		if lr > 0 {
			t.learningRate = lr
		}
	}
}

// WithRegularization sets the L2 penalty guarding sparse rows and
// columns against overfitting.
func WithRegularization(reg float64) Option {
	return func(t *Trainer) {
		if reg >= 0 {
			t.regularization = reg
		}
	}
}

// WithSeed sets the factor-initialization seed, keeping training
// deterministic for identical inputs.
func WithSeed(seed int64) Option {
	return func(t *Trainer) {
		t.seed = seed
	}
}

// NewTrainer creates a trainer with configuration options.
func NewTrainer(opts ...Option) *Trainer {
	t := &Trainer{
		rank:           defaultRank,
		epochs:         defaultEpochs,
		learningRate:   defaultLearningRate,
		regularization: defaultRegularization,
		initStddev:     defaultInitStddev,
		seed:           defaultRandomSeed,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// observation is one cell of the sparse interaction matrix.
type observation struct {
	engineer int
	task     int
	success  float64
}

// Train fits a snapshot to the outcome history. Repeated outcomes for
// the same engineer/task pair are averaged into a single observed entry.
// Returns ErrNoObservations for an empty history.
func (t *Trainer) Train(ctx context.Context, history []model.TaskOutcome) (*Snapshot, error) {
	if t.rank < 1 || t.epochs < 1 || t.learningRate <= 0 || t.regularization < 0 {
		return nil, fmt.Errorf("rank=%d epochs=%d lr=%g reg=%g: %w",
			t.rank, t.epochs, t.learningRate, t.regularization, ErrInvalidTrainer)
	}

	engineerIndex := make(map[string]int)
	taskIndex := make(map[string]int)
	type cell struct {
		sum   float64
		count int
	}
	cells := make(map[[2]int]*cell)

	for _, out := range history {
		u, ok := engineerIndex[out.EngineerID]
		if !ok {
			u = len(engineerIndex)
			engineerIndex[out.EngineerID] = u
		}
		i, ok := taskIndex[out.TaskID]
		if !ok {
			i = len(taskIndex)
			taskIndex[out.TaskID] = i
		}
		key := [2]int{u, i}
		c := cells[key]
		if c == nil {
			c = &cell{}
			cells[key] = c
		}
		c.sum += model.Clamp01(out.Success)
		c.count++
	}
	if len(cells) == 0 {
		return nil, ErrNoObservations
	}

	// Flatten in deterministic order; map iteration order must not leak
	// into the fitted parameters.
	observations := make([]observation, 0, len(cells))
	var mean float64
	for u := 0; u < len(engineerIndex); u++ {
		for i := 0; i < len(taskIndex); i++ {
			if c, ok := cells[[2]int{u, i}]; ok {
				r := c.sum / float64(c.count)
				observations = append(observations, observation{engineer: u, task: i, success: r})
				mean += r
			}
		}
	}
	mean /= float64(len(observations))

	rng := rand.New(rand.NewSource(t.seed)) //nolint:gosec // deterministic training runs
	engineerFactors := t.initFactors(rng, len(engineerIndex))
	taskFactors := t.initFactors(rng, len(taskIndex))
	engineerBias := make([]float64, len(engineerIndex))
	taskBias := make([]float64, len(taskIndex))

	lr, reg := t.learningRate, t.regularization
	for epoch := 0; epoch < t.epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("training cancelled at epoch %d: %w", epoch, err)
		}
		rng.Shuffle(len(observations), func(a, b int) {
			observations[a], observations[b] = observations[b], observations[a]
		})
		for _, obs := range observations {
			pu := engineerFactors[obs.engineer]
			qi := taskFactors[obs.task]

			pred := mean + engineerBias[obs.engineer] + taskBias[obs.task]
			for f := 0; f < t.rank; f++ {
				pred += pu[f] * qi[f]
			}
			e := obs.success - pred

			engineerBias[obs.engineer] += lr * (e - reg*engineerBias[obs.engineer])
			taskBias[obs.task] += lr * (e - reg*taskBias[obs.task])
			for f := 0; f < t.rank; f++ {
				puf, qif := pu[f], qi[f]
				pu[f] += lr * (e*qif - reg*puf)
				qi[f] += lr * (e*puf - reg*qif)
			}
		}
	}

	return &Snapshot{
		version:         uuid.New().String(),
		trainedAt:       time.Now(),
		rank:            t.rank,
		observations:    len(observations),
		globalMean:      mean,
		engineerIndex:   engineerIndex,
		taskIndex:       taskIndex,
		engineerFactors: engineerFactors,
		taskFactors:     taskFactors,
		engineerBias:    engineerBias,
		taskBias:        taskBias,
	}, nil
}

// initFactors draws small Gaussian factor vectors for n entities.
func (t *Trainer) initFactors(rng *rand.Rand, n int) [][]float64 {
	factors := make([][]float64, n)
	for i := range factors {
		row := make([]float64, t.rank)
		for f := range row {
			row[f] = rng.NormFloat64() * t.initStddev
		}
		factors[i] = row
	}
	return factors
}

// Package config defines service configuration structures and loading.
//
// Conventions:
// - Provide New() defaults and Load(ctx) for layered loading.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// WorkerCount bounds the per-request feature scoring fan-out.
	WorkerCount int `koanf:"worker_count"`

	// MaxRecommendLimit caps the limit accepted by POST /recommend.
	MaxRecommendLimit int `koanf:"max_recommend_limit"`

	// Ranking weights. Each in [0,1]; the three must sum to 1.
	WeightCoverage    float64 `koanf:"weight_coverage"`
	WeightProficiency float64 `koanf:"weight_proficiency"`
	WeightAffinity    float64 `koanf:"weight_affinity"`

	// BlendCurve selects the experience weighting curve: logistic or
	// saturating.
	BlendCurve      string  `koanf:"blend_curve"`
	BlendSteepness  float64 `koanf:"blend_steepness"`
	BlendMidpoint   float64 `koanf:"blend_midpoint"`
	BlendSaturation float64 `koanf:"blend_saturation"`

	// ShortfallPenalty multiplies per-skill contributions below a
	// task's minimum level. In (0,1].
	ShortfallPenalty float64 `koanf:"shortfall_penalty"`

	// ImplicitAggregation selects outcome evidence aggregation: recency
	// or mean.
	ImplicitAggregation  string `koanf:"implicit_aggregation"`
	ImplicitHalfLifeDays int    `koanf:"implicit_half_life_days"`

	// Affinity model training parameters.
	FactorRank     int     `koanf:"factor_rank"`
	TrainEpochs    int     `koanf:"train_epochs"`
	LearningRate   float64 `koanf:"learning_rate"`
	Regularization float64 `koanf:"regularization"`

	// SeedDemoData populates the in-memory store with a synthetic
	// talent corpus at startup.
	SeedDemoData  bool `koanf:"seed_demo_data"`
	SeedEngineers int  `koanf:"seed_engineers"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9090",
		WorkerCount:          runtime.NumCPU(),
		MaxRecommendLimit:    50,
		WeightCoverage:       0.6,
		WeightProficiency:    0.3,
		WeightAffinity:       0.1,
		BlendCurve:           "logistic",
		BlendSteepness:       0.5,
		BlendMidpoint:        10,
		BlendSaturation:      5,
		ShortfallPenalty:     0.5,
		ImplicitAggregation:  "recency",
		ImplicitHalfLifeDays: 90,
		FactorRank:           50,
		TrainEpochs:          20,
		LearningRate:         0.005,
		Regularization:       0.02,
		SeedDemoData:         false,
		SeedEngineers:        40,
	}
}

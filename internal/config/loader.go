package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/synapsehq/synapse/internal/domain/ranking"
)

// Load builds a Config by layering defaults, an optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SYNAPSE_CONFIG is set
//  3. env (prefix SYNAPSE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SYNAPSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Env keys like SYNAPSE_WEIGHT_COVERAGE map to flat koanf tags with
	// underscores preserved.
	envProvider := env.Provider("SYNAPSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "synapse_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Weights returns the configured ranking weights.
func (c *Config) Weights() ranking.Weights {
	return ranking.Weights{
		Coverage:    c.WeightCoverage,
		Proficiency: c.WeightProficiency,
		Affinity:    c.WeightAffinity,
	}
}

// validate rejects configurations the core would refuse at request
// time, so misconfiguration fails at startup instead.
func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if err := c.Weights().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.ShortfallPenalty <= 0 || c.ShortfallPenalty > 1 {
		return fmt.Errorf("%w: shortfall_penalty must be in (0,1]", ErrInvalidConfig)
	}
	if c.FactorRank < 1 || c.TrainEpochs < 1 {
		return fmt.Errorf("%w: factor_rank and train_epochs must be positive", ErrInvalidConfig)
	}
	if c.LearningRate <= 0 || c.Regularization < 0 {
		return fmt.Errorf("%w: learning_rate must be positive and regularization non-negative", ErrInvalidConfig)
	}
	switch c.BlendCurve {
	case "logistic", "saturating":
	default:
		return fmt.Errorf("%w: blend_curve must be logistic or saturating", ErrInvalidConfig)
	}
	switch c.ImplicitAggregation {
	case "recency", "mean":
	default:
		return fmt.Errorf("%w: implicit_aggregation must be recency or mean", ErrInvalidConfig)
	}
	return nil
}

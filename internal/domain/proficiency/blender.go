package proficiency

import (
	"math"
	"sort"

	"github.com/synapsehq/synapse/internal/domain/model"
)

// Curve selects the experience-to-blend-weight function. Both curves are
// continuous, bounded in [0,1], and monotonically increasing with
// experience, so novices lean on explicit claims and veterans on
// implicit evidence.
type Curve string

// Supported blend curves.
const (
	// CurveLogistic is 1/(1+exp(-k*(experience-midpoint))), with the
	// novice anchor that zero experience always yields weight zero.
	CurveLogistic Curve = "logistic"
	// CurveSaturating is experience/(experience+c).
	CurveSaturating Curve = "saturating"
)

// Default blender configuration constants.
const (
	defaultLogisticSteepness  = 0.5
	defaultLogisticMidpoint   = 10.0
	defaultSaturationConstant = 5.0
	defaultShortfallPenalty   = 0.5
)

// Blender computes per-skill and per-task proficiency values in [0,1].
type Blender struct {
	curve              Curve
	logisticSteepness  float64
	logisticMidpoint   float64
	saturationConstant float64
	shortfallPenalty   float64
}

// Option applies a configuration option to the Blender.
type Option func(*Blender)

// WithCurve selects the experience weighting curve.
func WithCurve(c Curve) Option {
	return func(b *Blender) {
		if c == CurveLogistic || c == CurveSaturating {
			b.curve = c
		}
	}
}

// WithLogisticCurve sets the logistic curve parameters.
func WithLogisticCurve(steepness, midpoint float64) Option {
	return func(b *Blender) {
		if steepness > 0 && midpoint > 0 {
			b.curve = CurveLogistic
			b.logisticSteepness = steepness
			b.logisticMidpoint = midpoint
		}
	}
}

// WithSaturatingCurve sets the saturation constant for the ratio curve.
func WithSaturatingCurve(c float64) Option {
	return func(b *Blender) {
		if c > 0 {
			b.curve = CurveSaturating
			b.saturationConstant = c
		}
	}
}

// WithShortfallPenalty sets the multiplier applied to per-skill
// contributions that miss the task's minimum level. Must be in (0,1].
func WithShortfallPenalty(p float64) Option {
	return func(b *Blender) {
		if p > 0 && p <= 1 {
			b.shortfallPenalty = p
		}
	}
}

// NewBlender creates a blender with configuration options.
func NewBlender(opts ...Option) *Blender {
	b := &Blender{
		curve:              CurveLogistic,
		logisticSteepness:  defaultLogisticSteepness,
		logisticMidpoint:   defaultLogisticMidpoint,
		saturationConstant: defaultSaturationConstant,
		shortfallPenalty:   defaultShortfallPenalty,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BlendWeight returns the implicit-evidence weight for an experience
// score. The complement 1-w weights the explicit claim.
func (b *Blender) BlendWeight(experience float64) float64 {
	if experience <= 0 {
		// Zero completed tasks means nothing to infer from.
		return 0
	}
	switch b.curve {
	case CurveSaturating:
		return experience / (experience + b.saturationConstant)
	default:
		return 1 / (1 + math.Exp(-b.logisticSteepness*(experience-b.logisticMidpoint)))
	}
}

// SkillProficiency blends the engineer's explicit claim and implicit
// evidence for one skill. The second return reports whether any
// evidence, explicit or implicit, exists; without evidence the value
// is zero.
func (b *Blender) SkillProficiency(eng model.Engineer, skill model.SkillID, ix *Index) (float64, bool) {
	explicit, hasExplicit := eng.Explicit[skill]
	implicit, hasImplicit := ix.Implicit(eng.ID, skill)

	switch {
	case hasExplicit && hasImplicit:
		w := b.BlendWeight(eng.Experience)
		return model.Clamp01(w*implicit.Value + (1-w)*model.Clamp01(explicit)), true
	case hasExplicit:
		return model.Clamp01(explicit), true
	case hasImplicit:
		return implicit.Value, true
	default:
		return 0, false
	}
}

// TaskProficiency aggregates per-skill proficiency over the task's
// required skills. Contributions below a skill's minimum level are
// clamped down by the shortfall penalty and the candidate is flagged;
// exclusion is the candidate filter's job, not ours.
func (b *Blender) TaskProficiency(eng model.Engineer, task model.Task, ix *Index) (float64, bool) {
	if len(task.Requirements) == 0 {
		return 0, false
	}

	// Sorted iteration keeps float accumulation deterministic.
	skills := make([]model.SkillID, 0, len(task.Requirements))
	for skill := range task.Requirements {
		skills = append(skills, skill)
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i] < skills[j] })

	var (
		sum          float64
		belowMinimum bool
	)
	for _, skill := range skills {
		value, _ := b.SkillProficiency(eng, skill, ix)
		if value < task.Requirements[skill] {
			value *= b.shortfallPenalty
			belowMinimum = true
		}
		sum += value
	}
	return model.Clamp01(sum / float64(len(skills))), belowMinimum
}

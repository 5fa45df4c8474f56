// Package model contains domain records passed between layers.
//
// The scoring core reads these as immutable per-request snapshots; all
// mutation happens in the repository layer before a snapshot is taken.
package model

import "time"

// SkillID identifies a skill. Skills have no structure beyond identity.
type SkillID string

// Skill is a catalog entry for a known skill.
type Skill struct {
	ID   SkillID `json:"id"`
	Name string  `json:"name"`
}

// Engineer is a member of the talent pool.
//
// Explicit maps skill to the engineer's self-declared level in [0,1].
// Experience is derived by the data layer from completed tasks and is
// monotonically non-decreasing.
type Engineer struct {
	ID         string              `json:"id"`
	Name       string              `json:"name,omitempty"`
	Available  bool                `json:"available"`
	Explicit   map[SkillID]float64 `json:"explicit,omitempty"`
	Experience float64             `json:"experience"`
}

// Task describes a unit of work with minimum skill requirements.
// Requirements maps skill to the minimum acceptable level in [0,1] and
// must be non-empty for a task to be scoreable.
type Task struct {
	ID           string              `json:"id"`
	Title        string              `json:"title,omitempty"`
	Requirements map[SkillID]float64 `json:"requirements"`
}

// TaskOutcome records how well an engineer performed on a completed task.
// Success is a normalized metric in [0,1].
type TaskOutcome struct {
	EngineerID  string    `json:"engineer_id"`
	TaskID      string    `json:"task_id"`
	Success     float64   `json:"success"`
	CompletedAt time.Time `json:"completed_at"`
}

// FeatureVector holds the per-candidate scoring features, each in [0,1].
type FeatureVector struct {
	Coverage    float64 `json:"coverage"`
	Proficiency float64 `json:"proficiency"`
	Affinity    float64 `json:"affinity"`
}

// ScoredCandidate is one row of a ranked recommendation result.
// BelowMinimum marks candidates whose proficiency missed at least one
// required skill's minimum level; they are ranked, not excluded.
type ScoredCandidate struct {
	EngineerID   string        `json:"engineer_id"`
	Features     FeatureVector `json:"features"`
	Score        float64       `json:"score"`
	Rank         int           `json:"rank"`
	BelowMinimum bool          `json:"below_minimum,omitempty"`
}

// Clamp01 constrains v to the [0,1] range shared by every score in the
// pipeline.
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

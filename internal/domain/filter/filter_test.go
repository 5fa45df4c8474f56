package filter_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/synapsehq/synapse/internal/domain/filter"
	"github.com/synapsehq/synapse/internal/domain/model"
)

// stubEvidence marks (engineer, skill) pairs as having implicit evidence.
type stubEvidence map[string]map[model.SkillID]bool

func (s stubEvidence) HasEvidence(engineerID string, skill model.SkillID) bool {
	return s[engineerID][skill]
}

func TestCandidates(t *testing.T) {
	Convey("Given a task and an engineer pool", t, func() {
		ctx := context.Background()
		task := model.Task{
			ID:           "task-1",
			Requirements: map[model.SkillID]float64{"go": 0.5, "postgres": 0.3},
		}

		explicitMatch := model.Engineer{
			ID:        "eng-1",
			Available: true,
			Explicit:  map[model.SkillID]float64{"go": 0.8},
		}
		unavailable := model.Engineer{
			ID:        "eng-2",
			Available: false,
			Explicit:  map[model.SkillID]float64{"go": 0.9},
		}
		implicitOnly := model.Engineer{
			ID:        "eng-3",
			Available: true,
			Explicit:  map[model.SkillID]float64{"react": 0.7},
		}
		noOverlap := model.Engineer{
			ID:        "eng-4",
			Available: true,
			Explicit:  map[model.SkillID]float64{"react": 0.9},
		}
		pool := []model.Engineer{explicitMatch, unavailable, implicitOnly, noOverlap}

		evidence := stubEvidence{
			"eng-3": {"postgres": true},
		}

		Convey("When filtering", func() {
			candidates, err := filter.Candidates(ctx, task, pool, evidence)

			Convey("Then it keeps available engineers with explicit or implicit overlap", func() {
				So(err, ShouldBeNil)
				So(candidates, ShouldHaveLength, 2)
				So(candidates[0].ID, ShouldEqual, "eng-1")
				So(candidates[1].ID, ShouldEqual, "eng-3")
			})
		})

		Convey("When no engineer overlaps the requirements", func() {
			candidates, err := filter.Candidates(ctx, task, []model.Engineer{noOverlap}, evidence)

			Convey("Then the empty result is not an error", func() {
				So(err, ShouldBeNil)
				So(candidates, ShouldBeEmpty)
			})
		})

		Convey("When the evidence source is nil", func() {
			candidates, err := filter.Candidates(ctx, task, pool, nil)

			Convey("Then only explicit overlap counts", func() {
				So(err, ShouldBeNil)
				So(candidates, ShouldHaveLength, 1)
				So(candidates[0].ID, ShouldEqual, "eng-1")
			})
		})

		Convey("When the task has no requirements", func() {
			_, err := filter.Candidates(ctx, model.Task{ID: "empty"}, pool, evidence)

			Convey("Then it returns ErrInvalidTask", func() {
				So(errors.Is(err, filter.ErrInvalidTask), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := filter.Candidates(cancelled, task, pool, evidence)

			Convey("Then the context error surfaces", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})

		Convey("When an explicit level is zero", func() {
			zeroed := model.Engineer{
				ID:        "eng-5",
				Available: true,
				Explicit:  map[model.SkillID]float64{"go": 0},
			}
			candidates, err := filter.Candidates(ctx, task, []model.Engineer{zeroed}, nil)

			Convey("Then it does not count as overlap", func() {
				So(err, ShouldBeNil)
				So(candidates, ShouldBeEmpty)
			})
		})
	})
}

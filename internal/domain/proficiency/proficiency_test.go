package proficiency_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/synapsehq/synapse/internal/domain/model"
	"github.com/synapsehq/synapse/internal/domain/proficiency"
)

var refTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestBlendWeight(t *testing.T) {
	Convey("Given the default logistic blender", t, func() {
		b := proficiency.NewBlender()

		Convey("Then zero experience yields zero weight", func() {
			So(b.BlendWeight(0), ShouldEqual, 0)
			So(b.BlendWeight(-3), ShouldEqual, 0)
		})

		Convey("Then the midpoint yields one half", func() {
			So(b.BlendWeight(10), ShouldAlmostEqual, 0.5, 1e-9)
		})

		Convey("Then the weight increases monotonically and stays in [0,1]", func() {
			prev := 0.0
			for exp := 1.0; exp <= 60; exp++ {
				w := b.BlendWeight(exp)
				So(w, ShouldBeGreaterThan, prev)
				So(w, ShouldBeBetweenOrEqual, 0, 1)
				prev = w
			}
			So(prev, ShouldBeGreaterThan, 0.99)
		})
	})

	Convey("Given a saturating blender", t, func() {
		b := proficiency.NewBlender(proficiency.WithSaturatingCurve(5))

		Convey("Then the saturation constant yields one half", func() {
			So(b.BlendWeight(5), ShouldAlmostEqual, 0.5, 1e-9)
		})

		Convey("Then the weight approaches but never reaches one", func() {
			So(b.BlendWeight(500), ShouldBeGreaterThan, 0.99)
			So(b.BlendWeight(500), ShouldBeLessThan, 1)
		})
	})
}

func TestIndex(t *testing.T) {
	Convey("Given an outcome history over two tasks", t, func() {
		tasks := map[string]model.Task{
			"t-go":  {ID: "t-go", Requirements: map[model.SkillID]float64{"go": 0.5}},
			"t-web": {ID: "t-web", Requirements: map[model.SkillID]float64{"react": 0.4, "css": 0.3}},
		}
		history := []model.TaskOutcome{
			{EngineerID: "eng-1", TaskID: "t-go", Success: 1.0, CompletedAt: refTime},
			{EngineerID: "eng-1", TaskID: "t-go", Success: 0.0, CompletedAt: refTime.Add(-90 * 24 * time.Hour)},
			{EngineerID: "eng-1", TaskID: "t-web", Success: 0.8, CompletedAt: refTime},
			{EngineerID: "eng-2", TaskID: "missing", Success: 1.0, CompletedAt: refTime},
		}

		Convey("When aggregated with the plain mean", func() {
			ix := proficiency.NewIndex(history, tasks,
				proficiency.WithAggregation(proficiency.AggregationMean),
				proficiency.WithReferenceTime(refTime),
			)

			Convey("Then evidence is the unweighted mean of successes", func() {
				ev, ok := ix.Implicit("eng-1", "go")
				So(ok, ShouldBeTrue)
				So(ev.Value, ShouldAlmostEqual, 0.5, 1e-9)
				So(ev.Observations, ShouldEqual, 2)
			})

			Convey("Then an outcome feeds every required skill of its task", func() {
				react, ok := ix.Implicit("eng-1", "react")
				So(ok, ShouldBeTrue)
				So(react.Value, ShouldAlmostEqual, 0.8, 1e-9)

				css, ok := ix.Implicit("eng-1", "css")
				So(ok, ShouldBeTrue)
				So(css.Value, ShouldAlmostEqual, 0.8, 1e-9)
			})

			Convey("Then outcomes for unknown tasks contribute nothing", func() {
				_, ok := ix.Implicit("eng-2", "go")
				So(ok, ShouldBeFalse)
				So(ix.HasEvidence("eng-2", "go"), ShouldBeFalse)
			})
		})

		Convey("When aggregated with recency weighting", func() {
			ix := proficiency.NewIndex(history, tasks,
				proficiency.WithAggregation(proficiency.AggregationRecency),
				proficiency.WithHalfLife(90*24*time.Hour),
				proficiency.WithReferenceTime(refTime),
			)

			Convey("Then recent outcomes outweigh old ones", func() {
				// Fresh success weighs 1, the 90-day-old failure 0.5.
				ev, ok := ix.Implicit("eng-1", "go")
				So(ok, ShouldBeTrue)
				So(ev.Value, ShouldAlmostEqual, 1.0/1.5, 1e-9)
			})
		})

		Convey("Then HasEvidence is false for zero-valued evidence", func() {
			ix := proficiency.NewIndex([]model.TaskOutcome{
				{EngineerID: "eng-3", TaskID: "t-go", Success: 0, CompletedAt: refTime},
			}, tasks, proficiency.WithReferenceTime(refTime))

			So(ix.HasEvidence("eng-3", "go"), ShouldBeFalse)
			_, ok := ix.Implicit("eng-3", "go")
			So(ok, ShouldBeTrue)
		})
	})
}

func TestSkillProficiency(t *testing.T) {
	Convey("Given explicit claims and implicit evidence", t, func() {
		tasks := map[string]model.Task{
			"t-go": {ID: "t-go", Requirements: map[model.SkillID]float64{"go": 0.5}},
		}
		history := []model.TaskOutcome{
			{EngineerID: "eng-1", TaskID: "t-go", Success: 0.6, CompletedAt: refTime},
		}
		ix := proficiency.NewIndex(history, tasks,
			proficiency.WithAggregation(proficiency.AggregationMean),
			proficiency.WithReferenceTime(refTime),
		)
		b := proficiency.NewBlender()

		Convey("When both signals exist", func() {
			eng := model.Engineer{
				ID:         "eng-1",
				Explicit:   map[model.SkillID]float64{"go": 1.0},
				Experience: 10,
			}
			value, ok := b.SkillProficiency(eng, "go", ix)

			Convey("Then the value is the experience-weighted blend", func() {
				So(ok, ShouldBeTrue)
				// Weight is 0.5 at the logistic midpoint.
				So(value, ShouldAlmostEqual, 0.8, 1e-9)
			})
		})

		Convey("When only the explicit claim exists", func() {
			eng := model.Engineer{
				ID:       "eng-9",
				Explicit: map[model.SkillID]float64{"go": 0.7},
			}
			value, ok := b.SkillProficiency(eng, "go", ix)

			So(ok, ShouldBeTrue)
			So(value, ShouldAlmostEqual, 0.7, 1e-9)
		})

		Convey("When only implicit evidence exists", func() {
			eng := model.Engineer{ID: "eng-1", Experience: 10}
			value, ok := b.SkillProficiency(eng, "go", ix)

			So(ok, ShouldBeTrue)
			So(value, ShouldAlmostEqual, 0.6, 1e-9)
		})

		Convey("When neither signal exists", func() {
			eng := model.Engineer{ID: "eng-9"}
			value, ok := b.SkillProficiency(eng, "rust", ix)

			So(ok, ShouldBeFalse)
			So(value, ShouldEqual, 0)
		})

		Convey("When the engineer is a novice with both signals", func() {
			eng := model.Engineer{
				ID:         "eng-1",
				Explicit:   map[model.SkillID]float64{"go": 0.9},
				Experience: 0,
			}
			value, ok := b.SkillProficiency(eng, "go", ix)

			Convey("Then the explicit claim dominates entirely", func() {
				So(ok, ShouldBeTrue)
				So(value, ShouldAlmostEqual, 0.9, 1e-9)
			})
		})

		Convey("Then more implicit evidence never lowers a veteran's value when evidence beats the claim", func() {
			weak := proficiency.NewIndex([]model.TaskOutcome{
				{EngineerID: "eng-1", TaskID: "t-go", Success: 0.9, CompletedAt: refTime},
			}, tasks, proficiency.WithAggregation(proficiency.AggregationMean), proficiency.WithReferenceTime(refTime))

			eng := model.Engineer{
				ID:       "eng-1",
				Explicit: map[model.SkillID]float64{"go": 0.5},
			}
			prev := 0.0
			for exp := 1.0; exp <= 40; exp += 1 {
				eng.Experience = exp
				value, ok := b.SkillProficiency(eng, "go", weak)
				So(ok, ShouldBeTrue)
				So(value, ShouldBeGreaterThanOrEqualTo, prev)
				prev = value
			}
		})
	})
}

func TestTaskProficiency(t *testing.T) {
	Convey("Given a task with two required skills", t, func() {
		task := model.Task{
			ID: "t-1",
			Requirements: map[model.SkillID]float64{
				"go":       0.5,
				"postgres": 0.4,
			},
		}
		ix := proficiency.NewIndex(nil, nil)
		b := proficiency.NewBlender()

		Convey("When the engineer clears every minimum", func() {
			eng := model.Engineer{
				ID:       "eng-1",
				Explicit: map[model.SkillID]float64{"go": 0.8, "postgres": 0.6},
			}
			value, belowMin := b.TaskProficiency(eng, task, ix)

			So(belowMin, ShouldBeFalse)
			So(value, ShouldAlmostEqual, 0.7, 1e-9)
		})

		Convey("When one skill misses its minimum", func() {
			eng := model.Engineer{
				ID:       "eng-2",
				Explicit: map[model.SkillID]float64{"go": 0.8, "postgres": 0.2},
			}
			value, belowMin := b.TaskProficiency(eng, task, ix)

			Convey("Then its contribution is penalized and the candidate flagged", func() {
				So(belowMin, ShouldBeTrue)
				// (0.8 + 0.2*0.5) / 2
				So(value, ShouldAlmostEqual, 0.45, 1e-9)
			})
		})

		Convey("When the engineer has no signal at all", func() {
			value, belowMin := b.TaskProficiency(model.Engineer{ID: "eng-3"}, task, ix)

			So(belowMin, ShouldBeTrue)
			So(value, ShouldEqual, 0)
		})

		Convey("When the task has no requirements", func() {
			value, belowMin := b.TaskProficiency(model.Engineer{ID: "eng-1"}, model.Task{ID: "empty"}, ix)

			So(value, ShouldEqual, 0)
			So(belowMin, ShouldBeFalse)
		})

		Convey("Then stronger implicit evidence never lowers task proficiency", func() {
			tasks := map[string]model.Task{
				"t-go": {ID: "t-go", Requirements: map[model.SkillID]float64{"go": 0.5}},
			}
			eng := model.Engineer{ID: "eng-1", Experience: 20}

			prev := -1.0
			for success := 0.0; success <= 1.0; success += 0.1 {
				evidence := proficiency.NewIndex([]model.TaskOutcome{
					{EngineerID: "eng-1", TaskID: "t-go", Success: success, CompletedAt: refTime},
				}, tasks, proficiency.WithAggregation(proficiency.AggregationMean), proficiency.WithReferenceTime(refTime))

				value, _ := b.TaskProficiency(eng, model.Task{
					ID:           "t-1",
					Requirements: map[model.SkillID]float64{"go": 0.5},
				}, evidence)
				So(value, ShouldBeGreaterThanOrEqualTo, prev)
				prev = value
			}
		})

		Convey("Then the result is identical across repeated calls", func() {
			eng := model.Engineer{
				ID:       "eng-1",
				Explicit: map[model.SkillID]float64{"go": 0.8, "postgres": 0.6},
			}
			first, _ := b.TaskProficiency(eng, task, ix)
			for i := 0; i < 20; i++ {
				again, _ := b.TaskProficiency(eng, task, ix)
				So(again, ShouldEqual, first)
			}
		})
	})
}

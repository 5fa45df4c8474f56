package seed_test

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/synapsehq/synapse/internal/seed"
)

func TestGenerate(t *testing.T) {
	Convey("Given a generator with a pinned seed and reference time", t, func() {
		ref := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		gen := seed.NewGenerator(
			seed.WithEngineerCount(12),
			seed.WithSeed(7),
			seed.WithReferenceTime(ref),
		)
		corpus := gen.Generate()

		Convey("Then the corpus has the requested engineer count", func() {
			So(corpus.Engineers, ShouldHaveLength, 12)
			So(corpus.Skills, ShouldHaveLength, 12)
		})

		Convey("Then engineer ids are stable and zero-padded", func() {
			So(corpus.Engineers[0].ID, ShouldEqual, "eng-001")
			So(corpus.Engineers[11].ID, ShouldEqual, "eng-012")
		})

		Convey("Then the open backlog holds one task per template", func() {
			open := 0
			for _, task := range corpus.Tasks {
				if strings.HasPrefix(task.ID, "task-") {
					open++
					So(task.Requirements, ShouldNotBeEmpty)
				}
			}
			So(open, ShouldEqual, 5)
		})

		Convey("Then every outcome references a generated task", func() {
			taskIDs := make(map[string]bool, len(corpus.Tasks))
			for _, task := range corpus.Tasks {
				taskIDs[task.ID] = true
			}
			for _, out := range corpus.Outcomes {
				So(taskIDs[out.TaskID], ShouldBeTrue)
				So(out.Success, ShouldBeBetweenOrEqual, 0, 1)
				So(out.CompletedAt.After(ref), ShouldBeFalse)
			}
		})

		Convey("Then experience matches each engineer's history size", func() {
			perEngineer := make(map[string]int)
			for _, out := range corpus.Outcomes {
				perEngineer[out.EngineerID]++
			}
			for _, eng := range corpus.Engineers {
				So(eng.Experience, ShouldEqual, float64(perEngineer[eng.ID]))
			}
		})

		Convey("Then the archetype mix covers novices and veterans", func() {
			var novices, veterans int
			for _, eng := range corpus.Engineers {
				switch {
				case eng.Experience <= 2:
					novices++
				case eng.Experience >= 10:
					veterans++
				}
			}
			So(novices, ShouldBeGreaterThan, 0)
			So(veterans, ShouldBeGreaterThan, 0)
		})

		Convey("Then identical settings regenerate an identical corpus", func() {
			again := seed.NewGenerator(
				seed.WithEngineerCount(12),
				seed.WithSeed(7),
				seed.WithReferenceTime(ref),
			).Generate()

			So(again, ShouldResemble, corpus)
		})

		Convey("Then a different seed changes the corpus", func() {
			other := seed.NewGenerator(
				seed.WithEngineerCount(12),
				seed.WithSeed(8),
				seed.WithReferenceTime(ref),
			).Generate()

			So(other, ShouldNotResemble, corpus)
		})
	})
}

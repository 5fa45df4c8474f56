package logger_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/synapsehq/synapse/pkg/logger"
)

func TestGlobalLogger(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("Then Get works without prior Init", func() {
			log := logger.Get()
			So(log, ShouldNotBeNil)
			So(func() { log.Info(context.Background(), "message") }, ShouldNotPanic)
		})

		Convey("Then Init replaces the global instance", func() {
			So(logger.Init(), ShouldBeNil)
			So(logger.Get(), ShouldNotBeNil)
		})

		Convey("Then Named returns a scoped sub-logger", func() {
			named := logger.Named("engine")
			So(named, ShouldNotBeNil)
			So(func() {
				named.Debug(context.Background(), "scored",
					logger.String("task", "task-1"),
					logger.Int("candidates", 3),
				)
			}, ShouldNotPanic)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		Convey("Then known names parse case-insensitively", func() {
			for _, level := range []string{"debug", "info", "WARN", "warning", "Error", ""} {
				So(logger.SetLevelString(level), ShouldBeNil)
			}
		})

		Convey("Then unknown names are rejected", func() {
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})

		Convey("Cleanup", func() {
			So(logger.SetLevelString("info"), ShouldBeNil)
		})
	})
}

func TestFields(t *testing.T) {
	Convey("Given the field constructors", t, func() {
		So(logger.String("k", "v"), ShouldResemble, logger.Field{Key: "k", Value: "v"})
		So(logger.Int("n", 7), ShouldResemble, logger.Field{Key: "n", Value: 7})
		So(logger.Float64("f", 0.5), ShouldResemble, logger.Field{Key: "f", Value: 0.5})
		So(logger.Bool("b", true), ShouldResemble, logger.Field{Key: "b", Value: true})

		err := errors.New("boom")
		So(logger.Error(err), ShouldResemble, logger.Field{Key: "error", Value: err})
	})
}

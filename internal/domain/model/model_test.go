package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/synapsehq/synapse/internal/domain/model"
)

func TestClamp01(t *testing.T) {
	Convey("Given values around the unit interval", t, func() {
		Convey("Then in-range values pass through", func() {
			So(model.Clamp01(0), ShouldEqual, 0)
			So(model.Clamp01(0.42), ShouldEqual, 0.42)
			So(model.Clamp01(1), ShouldEqual, 1)
		})

		Convey("Then out-of-range values are clamped", func() {
			So(model.Clamp01(-0.5), ShouldEqual, 0)
			So(model.Clamp01(1.7), ShouldEqual, 1)
		})
	})
}

func TestCatalog(t *testing.T) {
	Convey("Given a catalog of skills", t, func() {
		catalog := model.NewCatalog([]model.Skill{
			{ID: "go", Name: "Go"},
			{ID: "react", Name: "React"},
		})

		Convey("Then existence checks work", func() {
			So(catalog.Has("go"), ShouldBeTrue)
			So(catalog.Has("react"), ShouldBeTrue)
			So(catalog.Has("cobol"), ShouldBeFalse)
			So(catalog.Len(), ShouldEqual, 2)
		})

		Convey("Then lookup returns the entry", func() {
			skill, ok := catalog.Lookup("go")
			So(ok, ShouldBeTrue)
			So(skill.Name, ShouldEqual, "Go")

			_, ok = catalog.Lookup("cobol")
			So(ok, ShouldBeFalse)
		})

		Convey("When a duplicate id is registered", func() {
			dup := model.NewCatalog([]model.Skill{
				{ID: "go", Name: "Go"},
				{ID: "go", Name: "Golang"},
			})

			Convey("Then the later entry wins", func() {
				skill, ok := dup.Lookup("go")
				So(ok, ShouldBeTrue)
				So(skill.Name, ShouldEqual, "Golang")
				So(dup.Len(), ShouldEqual, 1)
			})
		})
	})
}

package carousel

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestViewport(t *testing.T) {
	Convey("Given content wider than the viewport", t, func() {
		content := ContentWidth(10, 340, 40, 0) // 3760
		v := NewViewport(content, 1280, 380, 10)

		Convey("Initially only scrolling right is possible", func() {
			a := v.Affordance()
			So(a.CanScrollLeft, ShouldBeFalse)
			So(a.CanScrollRight, ShouldBeTrue)
		})

		Convey("One step right enables both directions", func() {
			a := v.ScrollBy(Right)
			So(v.ScrollLeft, ShouldEqual, 380)
			So(a, ShouldResemble, Affordance{CanScrollLeft: true, CanScrollRight: true})
		})

		Convey("Scrolling to the end reverses the initial state", func() {
			a := v.ScrollTo(content)
			So(v.ScrollLeft, ShouldEqual, content-1280)
			So(a.CanScrollLeft, ShouldBeTrue)
			So(a.CanScrollRight, ShouldBeFalse)
		})

		Convey("Positions within the tolerance count as the edge", func() {
			So(v.ScrollTo(10).CanScrollLeft, ShouldBeFalse)
			So(v.ScrollTo(11).CanScrollLeft, ShouldBeTrue)
			So(v.ScrollTo(content-1280-10).CanScrollRight, ShouldBeFalse)
		})

		Convey("Scrolling left from the start stays at zero", func() {
			v.ScrollBy(Left)
			So(v.ScrollLeft, ShouldEqual, 0)
		})

		Convey("Widening the window past the content clamps the scroll", func() {
			v.ScrollTo(1000)
			a := v.Resize(5000)
			So(v.ScrollLeft, ShouldEqual, 0)
			So(a, ShouldResemble, Affordance{})
		})
	})

	Convey("Given content narrower than the viewport", t, func() {
		v := NewViewport(ContentWidth(2, 340, 40, 0), 1280, 380, 10)

		So(v.Affordance(), ShouldResemble, Affordance{})
		So(v.ScrollBy(Right), ShouldResemble, Affordance{})
	})

	Convey("Track padding counts toward the scroll width", t, func() {
		bare := NewViewport(ContentWidth(3, 340, 40, 0), 1150, 380, 10)
		padded := NewViewport(ContentWidth(3, 340, 40, 40), 1150, 380, 10)

		So(bare.Affordance().CanScrollRight, ShouldBeFalse)
		So(padded.Affordance().CanScrollRight, ShouldBeTrue)
	})

	Convey("Content width handles empty strips", t, func() {
		So(ContentWidth(0, 340, 40, 0), ShouldEqual, 0)
		So(ContentWidth(1, 340, 40, 0), ShouldEqual, 340)
		So(ContentWidth(0, 340, 40, 40), ShouldEqual, 80)
		So(ContentWidth(3, 340, 40, 40), ShouldEqual, 3*340+2*40+2*40)
	})
}

package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Semantic version comparison", t, func() {
		Convey("Should order patch, minor and major bumps", func() {
			cases := []struct {
				a, b string
				want int
			}{
				{"1.2.3", "1.2.3", 0},
				{"1.2.4", "1.2.3", 1},
				{"1.2.3", "1.3.0", -1},
				{"2.0.0", "1.9.9", 1},
			}

			for _, c := range cases {
				got, err := Compare(c.a, c.b)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, c.want)
			}
		})

		Convey("Should tolerate a leading v", func() {
			got, err := Compare("v1.2.3", "1.2.3")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, 0)
		})

		Convey("Should reject malformed versions", func() {
			_, err := Compare("1.2", "1.2.3")
			So(err, ShouldNotBeNil)

			_, err = Compare("a.b.c", "1.2.3")
			So(err, ShouldNotBeNil)
		})
	})
}

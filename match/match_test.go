package match

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSimilarity(t *testing.T) {
	Convey("Similarity scoring", t, func() {
		Convey("Identical names score 1", func() {
			So(Similarity("my show", "my show"), ShouldEqual, 1)
		})

		Convey("Empty strings score 0", func() {
			So(Similarity("", ""), ShouldEqual, 0)
			So(Similarity("my show", ""), ShouldEqual, 0)
			So(Similarity("", "my show"), ShouldEqual, 0)
		})

		Convey("Unrelated names score low", func() {
			So(Similarity("the office", "breaking bad"), ShouldBeLessThan, 0.3)
		})

		Convey("Near-identical names score high", func() {
			So(Similarity("breaking bad", "braking bad"), ShouldBeGreaterThan, 0.9)
		})

		Convey("Scoring is symmetric", func() {
			So(Similarity("my show", "my shows"), ShouldEqual, Similarity("my shows", "my show"))
		})

		Convey("Multibyte names are scored per rune, not per byte", func() {
			// Only one shared rune out of six; a byte-counted length would
			// inflate this well past 0.7.
			So(Similarity("進撃の巨人だ", "鬼滅の刃です"), ShouldBeLessThan, 0.3)

			So(Similarity("あいうえおかきくけこ", "あいうえおかきさしす"), ShouldAlmostEqual, 0.7, 0.0001)
		})
	})
}

func TestSameSeries(t *testing.T) {
	Convey("Same-series decision", t, func() {
		Convey("Exact names match after normalization", func() {
			So(SameSeries("My Show", "my show"), ShouldBeTrue)
			So(SameSeries("  My Show ", "MY SHOW"), ShouldBeTrue)
		})

		Convey("Substring containment matches either way", func() {
			So(SameSeries("My Show", "My Show 2"), ShouldBeTrue)
			So(SameSeries("My Show 2", "My Show"), ShouldBeTrue)
		})

		Convey("High-similarity names match", func() {
			So(SameSeries("Breaking Bad", "Braking Bad"), ShouldBeTrue)
		})

		Convey("Unrelated names do not match", func() {
			So(SameSeries("The Office", "Breaking Bad"), ShouldBeFalse)
		})

		Convey("Multibyte names below the threshold do not match", func() {
			So(SameSeries("あいうえおかきくけこ", "あいうえおかきさしす"), ShouldBeFalse)
			So(SameSeries("進撃の巨人だ", "鬼滅の刃です"), ShouldBeFalse)
		})

		Convey("Empty names never match anything", func() {
			So(SameSeries("", "My Show"), ShouldBeFalse)
			So(SameSeries("My Show", ""), ShouldBeFalse)
			So(SameSeries("", ""), ShouldBeFalse)
		})
	})
}

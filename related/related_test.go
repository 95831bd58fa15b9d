package related

import (
	"testing"

	"github.com/episodic-ext/episodic/episode"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDirection(t *testing.T) {
	Convey("Direction parsing", t, func() {
		Convey("Should accept the three wire values", func() {
			for _, s := range []string{"next", "previous", "all"} {
				_, ok := ParseDirection(s)
				So(ok, ShouldBeTrue)
			}
		})

		Convey("Should reject anything else", func() {
			_, ok := ParseDirection("sideways")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestFind(t *testing.T) {
	current := "https://example.com/My.Show.S01E03.mkv"
	candidates := []string{
		"https://example.com/My.Show.S01E04.mkv",
		"https://example.com/My.Show.S01E02.mkv",
		"https://example.com/My.Show.S02E01.mkv",
		"https://example.com/OtherShow.S01E04.mkv",
	}

	Convey("Given a reference episode and mixed candidates", t, func() {
		Convey("Direction next keeps only later same-season episodes", func() {
			found := Find(current, candidates, Next)

			So(found, ShouldHaveLength, 1)
			So(found[0].Number, ShouldEqual, 4)
			So(found[0].Season.MustGet(), ShouldEqual, 1)
			So(found[0].SeriesName, ShouldEqual, "My Show")
		})

		Convey("Direction previous keeps only earlier episodes", func() {
			found := Find(current, candidates, Previous)

			So(found, ShouldHaveLength, 1)
			So(found[0].Number, ShouldEqual, 2)
		})

		Convey("Direction all keeps both neighbors of the same season", func() {
			found := Find(current, candidates, All)

			So(lo.Map(found, func(e *episode.Episode, _ int) int {
				return e.Number
			}), ShouldResemble, []int{2, 4})
		})

		Convey("Results are ordered ascending by season then episode", func() {
			shuffled := []string{
				"https://example.com/My.Show.S01E09.mkv",
				"https://example.com/My.Show.S01E04.mkv",
				"https://example.com/My.Show.S01E07.mkv",
			}
			found := Find(current, shuffled, Next)

			So(lo.Map(found, func(e *episode.Episode, _ int) int {
				return e.Number
			}), ShouldResemble, []int{4, 7, 9})
		})
	})

	Convey("The exact reference URL is never its own relative", t, func() {
		found := Find(current, []string{current}, All)
		So(found, ShouldBeEmpty)
	})

	Convey("Unparseable candidates are skipped silently", t, func() {
		found := Find(current, []string{
			"https://example.com/nothing_here.mp4",
			"https://example.com/My.Show.S01E04.mkv",
		}, Next)

		So(found, ShouldHaveLength, 1)
	})

	Convey("An unparseable reference yields no relatives", t, func() {
		found := Find("https://example.com/nothing_here.mp4", candidates, All)
		So(found, ShouldBeEmpty)
	})

	Convey("Quality filters only when both sides carry a marker", t, func() {
		ref := "https://example.com/My.Show.S01E03.1080p.mkv"

		Convey("Mismatched qualities are filtered", func() {
			found := Find(ref, []string{"https://example.com/My.Show.S01E04.720p.mkv"}, Next)
			So(found, ShouldBeEmpty)
		})

		Convey("A candidate without a marker survives", func() {
			found := Find(ref, []string{"https://example.com/My.Show.S01E04.mkv"}, Next)
			So(found, ShouldHaveLength, 1)
		})

		Convey("Quality comparison ignores case", func() {
			found := Find(ref, []string{"https://example.com/My.Show.S01E04.1080P.mkv"}, Next)
			So(found, ShouldHaveLength, 1)
		})
	})
}

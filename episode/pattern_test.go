package episode

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSiblingPattern(t *testing.T) {
	Convey("Given an episode with a season marker", t, func() {
		ep := &Episode{
			SeriesName: "My Show",
			Season:     mo.Some(2),
			Number:     5,
		}

		Convey("The next-episode pattern should match sibling filenames", func() {
			p := SiblingPattern(ep, 1)

			So(p.MatchString("My.Show.S02E06.1080p.mkv"), ShouldBeTrue)
			So(p.MatchString("my show s2e6"), ShouldBeTrue)
			So(p.MatchString("My_Show_S02E06.mkv"), ShouldBeTrue)
		})

		Convey("It should not match other episodes or series", func() {
			p := SiblingPattern(ep, 1)

			So(p.MatchString("My.Show.S02E05.mkv"), ShouldBeFalse)
			So(p.MatchString("My.Show.S03E06.mkv"), ShouldBeFalse)
			So(p.MatchString("Other.Show.S02E06.mkv"), ShouldBeFalse)
		})

		Convey("The previous-episode pattern should match the earlier sibling", func() {
			p := SiblingPattern(ep, -1)

			So(p.MatchString("My.Show.S02E04.mkv"), ShouldBeTrue)
		})
	})

	Convey("Given an episode without a season marker", t, func() {
		ep := &Episode{
			SeriesName: "random clip",
			Number:     7,
		}

		Convey("The pattern should accept episode-word forms", func() {
			p := SiblingPattern(ep, 1)

			So(p.MatchString("random_clip_episode_08.mp4"), ShouldBeTrue)
			So(p.MatchString("random.clip.e8.mp4"), ShouldBeTrue)
		})
	})

	Convey("An offset walking before the first episode matches nothing", t, func() {
		ep := &Episode{SeriesName: "My Show", Number: 1}
		p := SiblingPattern(ep, -1)

		So(p.MatchString("My.Show.E00.mkv"), ShouldBeFalse)
		So(p.MatchString("My.Show.E01.mkv"), ShouldBeFalse)
		So(p.MatchString(""), ShouldBeFalse)
	})

	Convey("Regex metacharacters in the series name are treated literally", t, func() {
		ep := &Episode{SeriesName: "What If...?", Number: 3}
		p := SiblingPattern(ep, 1)

		So(p.MatchString("What.If...?.E04.mkv"), ShouldBeTrue)
		So(p.MatchString("What-IfXXX-E04.mkv"), ShouldBeFalse)
	})
}

func TestDigitAlternatives(t *testing.T) {
	Convey("Digit alternatives", t, func() {
		Convey("Should deduplicate equal padded forms", func() {
			So(digitAlternatives(123), ShouldEqual, "(?:123)")
		})

		Convey("Should offer bare and padded forms for small numbers", func() {
			So(digitAlternatives(7), ShouldEqual, "(?:7|07|007)")
		})
	})
}

package episode

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHasVideoExtension(t *testing.T) {
	Convey("Video extension detection", t, func() {
		Convey("Should accept known extensions regardless of case", func() {
			So(HasVideoExtension("show.mkv"), ShouldBeTrue)
			So(HasVideoExtension("show.MKV"), ShouldBeTrue)
			So(HasVideoExtension("/videos/clip.webm"), ShouldBeTrue)
		})

		Convey("Should reject everything else", func() {
			So(HasVideoExtension("page.html"), ShouldBeFalse)
			So(HasVideoExtension("archive.mkv.torrent"), ShouldBeFalse)
			So(HasVideoExtension("noextension"), ShouldBeFalse)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given a fully tagged release filename", t, func() {
		e, ok := Parse("https://cdn.example.com/videos/My.Show.S02E05.1080p.WEBRip.x264.mkv").Get()

		Convey("Then every field should be extracted", func() {
			So(ok, ShouldBeTrue)
			So(e.SeriesName, ShouldEqual, "My Show")
			So(e.Season.MustGet(), ShouldEqual, 2)
			So(e.Number, ShouldEqual, 5)
			So(e.Quality.MustGet(), ShouldEqual, "1080p")
			So(e.Title, ShouldEqual, "My Show S02E05")
			So(e.OriginalFilename, ShouldEqual, "My.Show.S02E05.1080p.WEBRip.x264.mkv")
		})
	})

	Convey("Given a filename with only a bare numeric token", t, func() {
		e, ok := Parse("https://cdn.example.com/random_clip_07.mp4").Get()

		Convey("Then the bare-digit fallback should apply with no season", func() {
			So(ok, ShouldBeTrue)
			So(e.SeriesName, ShouldEqual, "random clip")
			So(e.Season.IsAbsent(), ShouldBeTrue)
			So(e.Number, ShouldEqual, 7)
			So(e.Title, ShouldEqual, "random clip E07")
		})
	})

	Convey("Given a filename with no episode marker at all", t, func() {
		result := Parse("https://x.com/nothing_here.mp4")

		Convey("Then parsing should yield an absent result", func() {
			So(result.IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Given a URL with no usable path", t, func() {
		So(Parse("https://example.com/").IsAbsent(), ShouldBeTrue)
		So(Parse("://bad").IsAbsent(), ShouldBeTrue)
	})

	Convey("Season-episode markers should outrank bare digits", t, func() {
		e, ok := Parse("https://cdn.example.com/Show.05.S01E02.mkv").Get()

		So(ok, ShouldBeTrue)
		So(e.Number, ShouldEqual, 2)
		So(e.Season.MustGet(), ShouldEqual, 1)
		So(e.SeriesName, ShouldEqual, "Show 05")
	})

	Convey("Episode-word markers should be recognized", t, func() {
		e, ok := Parse("https://cdn.example.com/My.Show.Episode.12.mkv").Get()

		So(ok, ShouldBeTrue)
		So(e.Number, ShouldEqual, 12)
		So(e.SeriesName, ShouldEqual, "My Show")
	})

	Convey("Bracketed episode numbers should be recognized", t, func() {
		e, ok := Parse("https://cdn.example.com/%5BGroup%5D%20Some%20Show%20%5B03%5D.mkv").Get()

		So(ok, ShouldBeTrue)
		So(e.Number, ShouldEqual, 3)
	})

	Convey("A filename starting with its episode token has no series name", t, func() {
		e, ok := Parse("https://cdn.example.com/S01E04.mkv").Get()

		So(ok, ShouldBeTrue)
		So(e.SeriesName, ShouldEqual, UnknownSeries)
		So(e.Number, ShouldEqual, 4)
	})

	Convey("Four-digit tokens such as years should not parse as episodes", t, func() {
		So(Parse("https://cdn.example.com/Some.Movie.2019.mkv").IsAbsent(), ShouldBeTrue)
	})

	Convey("Parsing should be pure", t, func() {
		url := "https://cdn.example.com/My.Show.S02E05.1080p.mkv"
		first := Parse(url).MustGet()
		second := Parse(url).MustGet()

		So(first.Title, ShouldEqual, second.Title)
		So(first.SeriesName, ShouldEqual, second.SeriesName)
		So(first.Number, ShouldEqual, second.Number)
	})
}

func TestExtractQuality(t *testing.T) {
	Convey("Quality extraction", t, func() {
		Convey("Resolution markers should outrank codec markers", func() {
			q := extractQuality("Show.S01E01.720p.x264")
			So(q.MustGet(), ShouldEqual, "720p")
		})

		Convey("Codec markers should apply when no resolution exists", func() {
			q := extractQuality("Show.S01E01.x265")
			So(q.MustGet(), ShouldEqual, "x265")
		})

		Convey("Source markers should apply last", func() {
			q := extractQuality("Show.S01E01.WEBRip")
			So(q.MustGet(), ShouldEqual, "WEBRip")
		})

		Convey("No marker should yield an absent result", func() {
			So(extractQuality("Show.S01E01").IsAbsent(), ShouldBeTrue)
		})
	})
}

package history

import (
	"testing"

	"github.com/episodic-ext/episodic/episode"
	"github.com/episodic-ext/episodic/filesystem"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func testEpisode() *episode.Episode {
	return &episode.Episode{
		URL:        "https://cdn.example.com/My.Show.S01E05.mkv",
		Title:      "My Show S01E05",
		SeriesName: "My Show",
		Season:     mo.Some(1),
		Number:     5,
		Quality:    mo.Some("1080p"),
	}
}

func TestHistory(t *testing.T) {
	Convey("Given a parsed episode", t, func() {
		e := testEpisode()

		Convey("When saving playback progress", func() {
			err := Save(e, 42)

			Convey("Then the record should be persisted under its URL", func() {
				So(err, ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved[e.URL], ShouldNotBeNil)
				So(saved[e.URL].Title, ShouldEqual, "My Show S01E05")
				So(saved[e.URL].SeriesName, ShouldEqual, "My Show")
				So(saved[e.URL].Episode, ShouldEqual, 5)
				So(saved[e.URL].WatchedPercentage, ShouldEqual, 42)
			})

			Convey("Then a higher percentage should overwrite", func() {
				So(Save(e, 80), ShouldBeNil)

				saved, _ := Get()
				So(saved[e.URL].WatchedPercentage, ShouldEqual, 80)

				Convey("And a lower percentage should not regress it", func() {
					So(Save(e, 10), ShouldBeNil)

					saved, _ := Get()
					So(saved[e.URL].WatchedPercentage, ShouldEqual, 80)
				})
			})

			Convey("Then removing the record should delete it", func() {
				saved, _ := Get()
				So(Remove(saved[e.URL]), ShouldBeNil)

				saved, _ = Get()
				So(saved[e.URL], ShouldBeNil)
			})
		})
	})
}

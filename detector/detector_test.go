package detector

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/episodic-ext/episodic/protocol"
	. "github.com/smartystreets/goconvey/convey"
)

const pageHTML = `<html>
<head><title>Watch My Show</title></head>
<body>
  <p>New videos every week.</p>
  <div>
    Before text <a href="/files/My.Show.S01E05.mkv" title="Download">My Show S01E05</a> after text
  </div>
  <div>
    Episode 6 <a href="https://cdn.example.com/My.Show.S01E06.mkv">next one</a>
  </div>
  <a href="/files/My.Show.S01E05.mkv">duplicate</a>
  <a href="/about.html">about</a>
  <a href="video.mp4?token=abc">tokened</a>
</body>
</html>`

func newTestDetector() *Detector {
	d, err := FromHTML("https://example.com/watch/page1", pageHTML)
	So(err, ShouldBeNil)
	return d
}

func TestIsVideoLink(t *testing.T) {
	Convey("Video link detection", t, func() {
		Convey("Should accept video paths with query strings", func() {
			So(IsVideoLink("https://cdn.example.com/v.mp4?token=abc"), ShouldBeTrue)
		})

		Convey("Should reject non-video paths", func() {
			So(IsVideoLink("https://example.com/about.html"), ShouldBeFalse)
		})

		Convey("Should reject unparseable URLs", func() {
			So(IsVideoLink("://bad"), ShouldBeFalse)
		})
	})
}

func TestVideoLinks(t *testing.T) {
	Convey("Given a parsed page", t, func() {
		d := newTestDetector()

		Convey("VideoLinks resolves, filters and deduplicates anchors", func() {
			links := d.VideoLinks()

			So(links, ShouldResemble, []string{
				"https://example.com/files/My.Show.S01E05.mkv",
				"https://cdn.example.com/My.Show.S01E06.mkv",
				"https://example.com/watch/video.mp4?token=abc",
			})
		})
	})
}

func TestVideoLinksWithInfo(t *testing.T) {
	Convey("Given a parsed page", t, func() {
		d := newTestDetector()
		infos := d.VideoLinksWithInfo()

		So(infos, ShouldHaveLength, 3)

		Convey("Anchor metadata is extracted", func() {
			first := infos[0]

			So(first.URL, ShouldEqual, "https://example.com/files/My.Show.S01E05.mkv")
			So(first.Text, ShouldEqual, "My Show S01E05")
			So(first.Title, ShouldEqual, "Download")
			So(first.Filename, ShouldEqual, "My.Show.S01E05.mkv")
		})

		Convey("Nearby text aggregates surrounding siblings", func() {
			So(infos[0].NearbyText, ShouldContainSubstring, "Before text")
			So(infos[0].NearbyText, ShouldContainSubstring, "after text")
		})

		Convey("Episode hints in the parent element are appended", func() {
			So(infos[1].NearbyText, ShouldContainSubstring, "Episode 6")
		})
	})
}

func TestNearbyTextMultibyte(t *testing.T) {
	Convey("Given a page with long multibyte sibling text", t, func() {
		padding := strings.Repeat("エピソード一覧、", 10)
		html := `<html><body><div>` +
			padding +
			`<a href="/files/show.01.mkv">第一話</a>` +
			padding +
			`</div></body></html>`

		d, err := FromHTML("https://example.jp/watch", html)
		So(err, ShouldBeNil)

		infos := d.VideoLinksWithInfo()
		So(infos, ShouldHaveLength, 1)

		Convey("Truncated nearby text stays valid UTF-8", func() {
			So(infos[0].NearbyText, ShouldNotBeEmpty)
			So(utf8.ValidString(infos[0].NearbyText), ShouldBeTrue)
		})
	})
}

func TestPageInfo(t *testing.T) {
	Convey("Given a parsed page", t, func() {
		d := newTestDetector()
		d.SetReferrer("https://google.com/")

		Convey("The summary view describes the page", func() {
			info := d.PageInfo(false)

			So(info.URL, ShouldEqual, "https://example.com/watch/page1")
			So(info.Title, ShouldEqual, "Watch My Show")
			So(info.Referrer, ShouldEqual, "https://google.com/")
			So(info.Links, ShouldHaveLength, 3)
			So(info.Detailed, ShouldBeEmpty)
		})

		Convey("The detailed view includes per-link metadata", func() {
			info := d.PageInfo(true)

			So(info.Detailed, ShouldHaveLength, 3)
		})
	})
}

func TestScanForEpisodes(t *testing.T) {
	Convey("The scan answer carries the page identity and every link", t, func() {
		d := newTestDetector()

		resp := d.ScanForEpisodes("https://cdn.example.com/My.Show.S01E05.mkv")

		So(resp.Success, ShouldBeTrue)
		So(resp.CurrentURL, ShouldEqual, "https://cdn.example.com/My.Show.S01E05.mkv")
		So(resp.PageURL, ShouldEqual, "https://example.com/watch/page1")
		So(resp.PageTitle, ShouldEqual, "Watch My Show")
		So(resp.AllLinks, ShouldHaveLength, 3)
	})
}

func TestHandle(t *testing.T) {
	Convey("Given a detector handling page messages", t, func() {
		d := newTestDetector()

		Convey("Scan requests are routed with their payload", func() {
			payload, _ := json.Marshal(protocol.ScanForEpisodesRequest{CurrentURL: "https://cdn.example.com/v.mp4"})
			result, err := d.Handle(protocol.Envelope{Type: protocol.MsgScanForEpisodes, Payload: payload})

			So(err, ShouldBeNil)
			resp, ok := result.(protocol.ScanForEpisodesResponse)
			So(ok, ShouldBeTrue)
			So(resp.CurrentURL, ShouldEqual, "https://cdn.example.com/v.mp4")
		})

		Convey("Link queries are routed", func() {
			result, err := d.Handle(protocol.Envelope{Type: protocol.MsgGetVideoLinks})

			So(err, ShouldBeNil)
			So(result, ShouldHaveLength, 3)
		})

		Convey("Unknown types are rejected", func() {
			_, err := d.Handle(protocol.Envelope{Type: "NO_SUCH_MESSAGE"})
			So(err, ShouldNotBeNil)
		})
	})
}

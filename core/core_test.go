package core

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/episodic-ext/episodic/browser"
	"github.com/episodic-ext/episodic/episode"
	"github.com/episodic-ext/episodic/protocol"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

// idleHost satisfies browser.Host for message flows that never touch tabs.
type idleHost struct{}

func (idleHost) Tabs(context.Context) ([]protocol.Tab, error) {
	return nil, nil
}

func (idleHost) TabByID(context.Context, int) (protocol.Tab, error) {
	return protocol.Tab{}, browser.ErrTabNotFound
}

func (idleHost) SendMessage(context.Context, int, protocol.Envelope) (json.RawMessage, error) {
	return nil, browser.ErrNoReceiver
}

func (idleHost) InjectDetector(context.Context, int) error {
	return nil
}

func request(msgType string, payload any) protocol.Envelope {
	return protocol.Envelope{
		ID:      1,
		Type:    msgType,
		Payload: lo.Must(json.Marshal(payload)),
	}
}

func TestHandle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a core dispatcher", t, func() {
		c := New(idleHost{})

		Convey("Registering a source makes it retrievable", func() {
			tabID := 7
			result := c.Handle(ctx, request(protocol.MsgRegisterVideoSource, protocol.RegisterVideoSourceRequest{
				VideoURL:    "https://cdn.example.com/v.mp4",
				SourceURL:   "https://example.com/watch",
				SourceTabID: &tabID,
			}))

			So(result.(protocol.RegisterVideoSourceResponse).Success, ShouldBeTrue)

			got := c.Handle(ctx, request(protocol.MsgGetVideoSource, protocol.GetVideoSourceRequest{
				VideoURL: "https://cdn.example.com/v.mp4",
			})).(protocol.GetVideoSourceResponse)

			So(got.Success, ShouldBeTrue)
			So(got.SourceURL, ShouldEqual, "https://example.com/watch")
			So(*got.SourceTabID, ShouldEqual, 7)
			So(got.Timestamp, ShouldBeGreaterThan, 0)
		})

		Convey("Looking up an unregistered video reports an error", func() {
			got := c.Handle(ctx, request(protocol.MsgGetVideoSource, protocol.GetVideoSourceRequest{
				VideoURL: "https://cdn.example.com/unknown.mp4",
			})).(protocol.GetVideoSourceResponse)

			So(got.Success, ShouldBeFalse)
			So(got.Error, ShouldNotBeEmpty)
		})

		Convey("Related-episode requests are routed through the matcher", func() {
			got := c.Handle(ctx, request(protocol.MsgFindRelatedEpisodes, protocol.FindRelatedEpisodesRequest{
				CurrentURL: "https://example.com/My.Show.S01E03.mkv",
				CandidateURLs: []string{
					"https://example.com/My.Show.S01E04.mkv",
					"https://example.com/OtherShow.S01E04.mkv",
				},
				Direction: "next",
			})).(protocol.FindRelatedEpisodesResponse)

			So(got.Success, ShouldBeTrue)

			var episodes []*episode.Episode
			So(json.Unmarshal(got.Episodes, &episodes), ShouldBeNil)
			So(episodes, ShouldHaveLength, 1)
			So(episodes[0].Number, ShouldEqual, 4)
		})

		Convey("An unknown direction is rejected", func() {
			got := c.Handle(ctx, request(protocol.MsgFindRelatedEpisodes, protocol.FindRelatedEpisodesRequest{
				CurrentURL: "https://example.com/My.Show.S01E03.mkv",
				Direction:  "sideways",
			})).(protocol.FindRelatedEpisodesResponse)

			So(got.Success, ShouldBeFalse)
			So(got.Error, ShouldContainSubstring, "sideways")
		})

		Convey("Unknown message types resolve to an error response", func() {
			got := c.Handle(ctx, protocol.Envelope{ID: 1, Type: "NO_SUCH_MESSAGE"})

			resp, ok := got.(protocol.ErrorResponse)
			So(ok, ShouldBeTrue)
			So(resp.Error, ShouldContainSubstring, "NO_SUCH_MESSAGE")
		})

		Convey("Malformed payloads resolve to an error response", func() {
			got := c.Handle(ctx, protocol.Envelope{
				ID:      1,
				Type:    protocol.MsgScanSourcePage,
				Payload: json.RawMessage(`{not json`),
			})

			_, ok := got.(protocol.ErrorResponse)
			So(ok, ShouldBeTrue)
		})
	})
}

// Package protocol defines the JSON message contract between the extension
// shell, the background core, and the in-page link detector.
//
// Every exchange is an asynchronous request/response pair with a
// JSON-serializable payload. Requests carry a monotonically increasing id;
// responses echo the id of the request they answer.
package protocol

import "encoding/json"

// Message types sent from the UI/shell to the background core.
const (
	MsgScanSourcePage      = "SCAN_SOURCE_PAGE"
	MsgRegisterVideoSource = "REGISTER_VIDEO_SOURCE"
	MsgGetVideoSource      = "GET_VIDEO_SOURCE"
	MsgFindRelatedEpisodes = "FIND_RELATED_EPISODES"
)

// Message types sent from the core to a page's detector.
const (
	MsgScanForEpisodes       = "SCAN_FOR_EPISODES"
	MsgGetVideoLinks         = "GET_VIDEO_LINKS"
	MsgGetVideoLinksWithInfo = "GET_VIDEO_LINKS_WITH_INFO"
	MsgGetPageInfo           = "GET_PAGE_INFO"
	MsgGetPageInfoDetailed   = "GET_PAGE_INFO_DETAILED"
)

// Message types sent from the core to the shell to drive browser tabs.
const (
	MsgTabQuery       = "TAB_QUERY"
	MsgTabGet         = "TAB_GET"
	MsgTabSend        = "TAB_SEND"
	MsgInjectDetector = "INJECT_DETECTOR"
)

// MsgError is the type of a response reporting a malformed or unroutable request.
const MsgError = "ERROR"

// Envelope frames every message on the wire.
type Envelope struct {
	ID      int64           `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Tab describes one open browser tab as reported by the shell.
type Tab struct {
	ID    int    `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// VideoLinkInfo carries one detected video anchor with its contextual metadata.
type VideoLinkInfo struct {
	URL      string `json:"url"`
	Text     string `json:"text"`
	Title    string `json:"title,omitempty"`
	Filename string `json:"filename"`
	// NearbyText aggregates text surrounding the anchor plus any
	// "Episode N"/"Chapter N" hint found in its parent element. It is a
	// secondary ordering signal exposed for future matching.
	NearbyText string `json:"nearbyText,omitempty"`
}

// PageInfo describes the page a detector runs in.
type PageInfo struct {
	URL      string          `json:"url"`
	Title    string          `json:"title"`
	Referrer string          `json:"referrer,omitempty"`
	Links    []string        `json:"links"`
	Detailed []VideoLinkInfo `json:"linksWithInfo,omitempty"`
}

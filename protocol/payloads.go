package protocol

import "encoding/json"

// ScanSourcePageRequest asks the core to locate the page a video was found on
// and enumerate its video links.
type ScanSourcePageRequest struct {
	VideoURL string `json:"videoUrl"`
}

// ScanSourcePageResponse reports the outcome of a source-page scan. Error is
// populated exactly when Success is false.
type ScanSourcePageResponse struct {
	Success   bool     `json:"success"`
	VideoURL  string   `json:"videoUrl"`
	AllLinks  []string `json:"allLinks,omitempty"`
	PageURL   string   `json:"pageUrl,omitempty"`
	PageTitle string   `json:"pageTitle,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// RegisterVideoSourceRequest records where a video link was discovered.
type RegisterVideoSourceRequest struct {
	VideoURL    string `json:"videoUrl"`
	SourceURL   string `json:"sourceUrl"`
	SourceTabID *int   `json:"sourceTabId,omitempty"`
}

// RegisterVideoSourceResponse acknowledges a registration.
type RegisterVideoSourceResponse struct {
	Success bool `json:"success"`
}

// GetVideoSourceRequest looks up the recorded source of a video URL.
type GetVideoSourceRequest struct {
	VideoURL string `json:"videoUrl"`
}

// GetVideoSourceResponse returns the recorded source, or an error when no
// record exists.
type GetVideoSourceResponse struct {
	Success     bool   `json:"success"`
	SourceURL   string `json:"sourceUrl,omitempty"`
	SourceTabID *int   `json:"sourceTabId,omitempty"`
	Timestamp   int64  `json:"timestamp,omitempty"`
	Error       string `json:"error,omitempty"`
}

// FindRelatedEpisodesRequest ranks candidate URLs against a reference episode.
type FindRelatedEpisodesRequest struct {
	CurrentURL    string   `json:"currentUrl"`
	CandidateURLs []string `json:"candidateUrls"`
	Direction     string   `json:"direction"`
}

// FindRelatedEpisodesResponse carries the ordered related episodes.
type FindRelatedEpisodesResponse struct {
	Success  bool            `json:"success"`
	Episodes json.RawMessage `json:"episodes,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// ScanForEpisodesRequest asks a page's detector to enumerate video-like links,
// passing the reference video URL for context.
type ScanForEpisodesRequest struct {
	CurrentURL string `json:"currentUrl"`
}

// ScanForEpisodesResponse is the detector's enumeration of a page.
type ScanForEpisodesResponse struct {
	Success    bool     `json:"success"`
	CurrentURL string   `json:"currentUrl"`
	AllLinks   []string `json:"allLinks"`
	PageURL    string   `json:"pageUrl"`
	PageTitle  string   `json:"pageTitle"`
}

// TabGetRequest fetches a single tab by id.
type TabGetRequest struct {
	TabID int `json:"tabId"`
}

// TabQueryResponse lists every open tab.
type TabQueryResponse struct {
	Success bool   `json:"success"`
	Tabs    []Tab  `json:"tabs"`
	Error   string `json:"error,omitempty"`
}

// TabGetResponse returns one tab, or an error when the tab no longer exists.
type TabGetResponse struct {
	Success bool   `json:"success"`
	Tab     Tab    `json:"tab"`
	Error   string `json:"error,omitempty"`
}

// TabSendRequest relays a message to the detector running in a tab.
type TabSendRequest struct {
	TabID   int      `json:"tabId"`
	Message Envelope `json:"message"`
}

// TabSendResponse reports delivery. NoReceiver marks the specific failure mode
// of a page with no detector listening, which the orchestrator answers with a
// script injection and a single retry.
type TabSendResponse struct {
	Success    bool            `json:"success"`
	NoReceiver bool            `json:"noReceiver,omitempty"`
	Response   json.RawMessage `json:"response,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// InjectDetectorRequest injects the link detector script into a tab.
type InjectDetectorRequest struct {
	TabID int `json:"tabId"`
}

// InjectDetectorResponse reports the discrete outcome of a script injection.
type InjectDetectorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse reports a request the core could not route or decode.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Package detector enumerates video-like anchors within a web page's DOM and
// extracts contextual metadata per link.
//
// In the deployed extension this logic runs inside the page; here it operates
// on a parsed document, serving both the injected-context implementation and
// the direct-fetch scan path.
package detector

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/episodic-ext/episodic/episode"
	"github.com/episodic-ext/episodic/protocol"
	"github.com/episodic-ext/episodic/util"
	"golang.org/x/net/html"
)

const (
	// siblingTextLimit bounds how much of each adjacent sibling's text
	// contributes to the nearby-text signal.
	siblingTextLimit = 50
	// nearbyTextLimit bounds the combined sibling text before hints are appended.
	nearbyTextLimit = 100
)

// episodeHint finds weak ordering markers in the text surrounding a link.
var episodeHint = regexp.MustCompile(`(?i)(?:episode|chapter)\s*\d+`)

// Detector scans one page document.
type Detector struct {
	doc      *goquery.Document
	pageURL  *url.URL
	referrer string
}

// New wraps an already parsed document.
func New(pageURL string, doc *goquery.Document) (*Detector, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	return &Detector{doc: doc, pageURL: u}, nil
}

// FromHTML parses raw HTML into a scannable document.
func FromHTML(pageURL, htmlContent string) (*Detector, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}
	return New(pageURL, doc)
}

// SetReferrer records the page's referrer for page-info queries.
func (d *Detector) SetReferrer(referrer string) {
	d.referrer = referrer
}

// IsVideoLink reports whether a URL's path ends in a known video extension.
func IsVideoLink(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return episode.HasVideoExtension(u.Path)
}

// VideoLinks returns every video-like href on the page, resolved against the
// page URL and deduplicated by exact URL.
func (d *Detector) VideoLinks() []string {
	var links []string
	d.eachVideoAnchor(func(href string, _ *goquery.Selection) {
		links = append(links, href)
	})
	return links
}

// VideoLinksWithInfo returns every video-like anchor along with its visible
// text, title attribute, decoded filename and nearby-text hints.
func (d *Detector) VideoLinksWithInfo() []protocol.VideoLinkInfo {
	var infos []protocol.VideoLinkInfo
	d.eachVideoAnchor(func(href string, s *goquery.Selection) {
		title, _ := s.Attr("title")
		infos = append(infos, protocol.VideoLinkInfo{
			URL:        href,
			Text:       strings.TrimSpace(s.Text()),
			Title:      title,
			Filename:   decodedFilename(href),
			NearbyText: d.nearbyText(s),
		})
	})
	return infos
}

// PageInfo describes the page and its video links.
func (d *Detector) PageInfo(detailed bool) protocol.PageInfo {
	info := protocol.PageInfo{
		URL:      d.pageURL.String(),
		Title:    strings.TrimSpace(d.doc.Find("title").First().Text()),
		Referrer: d.referrer,
		Links:    d.VideoLinks(),
	}
	if detailed {
		info.Detailed = d.VideoLinksWithInfo()
	}
	return info
}

// ScanForEpisodes answers the orchestrator's scan request with every video
// link on the page plus the page's own identity.
func (d *Detector) ScanForEpisodes(currentURL string) protocol.ScanForEpisodesResponse {
	info := d.PageInfo(false)
	return protocol.ScanForEpisodesResponse{
		Success:    true,
		CurrentURL: currentURL,
		AllLinks:   info.Links,
		PageURL:    info.URL,
		PageTitle:  info.Title,
	}
}

// eachVideoAnchor visits each unique video-like anchor on the page.
func (d *Detector) eachVideoAnchor(visit func(href string, s *goquery.Selection)) {
	seen := make(map[string]bool)

	d.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}

		resolved := d.resolve(href)
		if resolved == "" || !IsVideoLink(resolved) {
			return
		}
		if seen[resolved] {
			return
		}
		seen[resolved] = true

		visit(resolved, s)
	})
}

// resolve turns a possibly relative href into an absolute URL.
func (d *Detector) resolve(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return d.pageURL.ResolveReference(u).String()
}

// nearbyText builds the contextual text signal for one anchor: up to 50
// trailing characters of the previous sibling plus up to 50 leading characters
// of the next sibling, with any episode/chapter hint from the parent element's
// full text appended.
func (d *Detector) nearbyText(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	node := s.Nodes[0]

	previous := util.TruncateHead(strings.TrimSpace(nodeText(node.PrevSibling)), siblingTextLimit)
	next := util.TruncateTail(strings.TrimSpace(nodeText(node.NextSibling)), siblingTextLimit)

	nearby := strings.TrimSpace(previous + " " + next)
	nearby = util.TruncateTail(nearby, nearbyTextLimit)

	if hint := episodeHint.FindString(s.Parent().Text()); hint != "" {
		nearby = strings.TrimSpace(nearby + " " + hint)
	}
	return nearby
}

// nodeText renders the text content of a DOM node, including text nodes that
// goquery selections do not expose directly.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// decodedFilename extracts the decoded final path segment of a URL.
func decodedFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segment := path.Base(u.Path)
	if decoded, err := url.PathUnescape(segment); err == nil {
		return decoded
	}
	return segment
}

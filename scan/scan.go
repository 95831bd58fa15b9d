// Package scan locates the page a video was discovered on and asks its in-page
// detector for every video-like link.
package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/episodic-ext/episodic/browser"
	"github.com/episodic-ext/episodic/key"
	"github.com/episodic-ext/episodic/log"
	"github.com/episodic-ext/episodic/protocol"
	"github.com/episodic-ext/episodic/registry"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Human-readable failure reasons surfaced to callers. The episode-grouping UI
// treats them all as "nothing found"; the distinct wording exists for diagnostics.
const (
	ErrNoSourcePage      = "No source page found"
	ErrSourceTabNotFound = "Source tab not found"
)

// defaultInjectionDelay is the heuristic wait for an injected detector script
// to register before the single retry. There is no readiness signal from the
// injected script; see the scan.injection_delay_ms config key.
const defaultInjectionDelay = 100 * time.Millisecond

// Scanner resolves a video URL to its source tab and drives the
// message-then-maybe-inject-then-retry protocol against that tab's detector.
type Scanner struct {
	registry *registry.Registry
	host     browser.Host
}

// New constructs a scanner over the given registry and browser host.
func New(reg *registry.Registry, host browser.Host) *Scanner {
	return &Scanner{registry: reg, host: host}
}

// ScanSourcePage finds the tab that hosted videoURL's link and enumerates the
// video links on its page. Every outcome, including panics in the host
// implementation, resolves to a response value; callers are never left hanging.
func (s *Scanner) ScanSourcePage(ctx context.Context, videoURL string) (result protocol.ScanSourcePageResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("scan of %s panicked: %v", videoURL, r)
			result = failure(videoURL, fmt.Sprintf("internal error: %v", r))
		}
	}()

	tab, reason := s.resolveTab(ctx, videoURL)
	if reason != "" {
		log.Infof("scan of %s failed: %s", videoURL, reason)
		return failure(videoURL, reason)
	}

	page, err := s.queryDetector(ctx, tab, videoURL)
	if err != nil {
		log.Infof("scan of %s failed querying tab %d: %v", videoURL, tab.ID, err)
		return failure(videoURL, err.Error())
	}

	// Merge the page's links with the reference URL itself.
	links := lo.Uniq(append(page.AllLinks, videoURL))

	pageURL := page.PageURL
	if pageURL == "" {
		pageURL = tab.URL
	}
	pageTitle := page.PageTitle
	if pageTitle == "" {
		pageTitle = tab.Title
	}

	return protocol.ScanSourcePageResponse{
		Success:   true,
		VideoURL:  videoURL,
		AllLinks:  links,
		PageURL:   pageURL,
		PageTitle: pageTitle,
	}
}

// resolveTab walks the four resolution branches: direct tab hit, dead-tab-id
// fallback to origin search, no-tab-id origin search, and no-record hostname
// search. It returns the target tab or a human-readable failure reason.
func (s *Scanner) resolveTab(ctx context.Context, videoURL string) (protocol.Tab, string) {
	record, ok := s.registry.Lookup(videoURL).Get()
	if !ok {
		return s.hostnameSearch(ctx, videoURL)
	}

	if tabID, ok := record.SourceTabID.Get(); ok {
		tab, err := s.host.TabByID(ctx, tabID)
		if err == nil {
			return tab, ""
		}
		log.Debugf("registered tab %d for %s is gone (%v), searching by origin", tabID, videoURL, err)
	}

	return s.originSearch(ctx, record.SourceURL)
}

// originSearch finds an open tab sharing the stored source URL's origin,
// preferring an exact URL match over any same-origin tab.
func (s *Scanner) originSearch(ctx context.Context, sourceURL string) (protocol.Tab, string) {
	source, err := url.Parse(sourceURL)
	if err != nil {
		return protocol.Tab{}, ErrSourceTabNotFound
	}

	tabs, err := s.host.Tabs(ctx)
	if err != nil {
		log.Errorf("tab query failed: %v", err)
		return protocol.Tab{}, ErrSourceTabNotFound
	}

	var sameOrigin []protocol.Tab
	for _, tab := range tabs {
		u, err := url.Parse(tab.URL)
		if err != nil || u.Scheme != source.Scheme || u.Host != source.Host {
			continue
		}
		if tab.URL == sourceURL {
			return tab, ""
		}
		sameOrigin = append(sameOrigin, tab)
	}

	if len(sameOrigin) > 0 {
		return sameOrigin[0], ""
	}
	return protocol.Tab{}, ErrSourceTabNotFound
}

// hostnameSearch handles the no-record branch: any open tab whose hostname
// equals the video URL's hostname, or is a subdomain of it, is a candidate.
func (s *Scanner) hostnameSearch(ctx context.Context, videoURL string) (protocol.Tab, string) {
	video, err := url.Parse(videoURL)
	if err != nil || video.Hostname() == "" {
		return protocol.Tab{}, ErrNoSourcePage
	}
	hostname := video.Hostname()

	tabs, err := s.host.Tabs(ctx)
	if err != nil {
		log.Errorf("tab query failed: %v", err)
		return protocol.Tab{}, ErrNoSourcePage
	}

	for _, tab := range tabs {
		u, err := url.Parse(tab.URL)
		if err != nil {
			continue
		}
		tabHost := u.Hostname()
		if tabHost == hostname || strings.HasSuffix(tabHost, "."+hostname) {
			return tab, ""
		}
	}

	return protocol.Tab{}, ErrNoSourcePage
}

// queryDetector sends the scan request to the tab's detector. When nothing in
// the page is listening it injects the detector, waits a fixed delay for it to
// initialize, and retries exactly once. A failed injection is surfaced
// immediately with no retry.
func (s *Scanner) queryDetector(ctx context.Context, tab protocol.Tab, videoURL string) (*protocol.ScanForEpisodesResponse, error) {
	msg := protocol.Envelope{
		Type:    protocol.MsgScanForEpisodes,
		Payload: lo.Must(json.Marshal(protocol.ScanForEpisodesRequest{CurrentURL: videoURL})),
	}

	raw, err := s.host.SendMessage(ctx, tab.ID, msg)
	if err != nil {
		if !errors.Is(err, browser.ErrNoReceiver) {
			return nil, err
		}

		log.Debugf("no detector listening in tab %d, injecting", tab.ID)
		if injectErr := s.host.InjectDetector(ctx, tab.ID); injectErr != nil {
			return nil, injectErr
		}
		if waitErr := wait(ctx, s.injectionDelay()); waitErr != nil {
			return nil, waitErr
		}

		raw, err = s.host.SendMessage(ctx, tab.ID, msg)
		if err != nil {
			return nil, err
		}
	}

	var page protocol.ScanForEpisodesResponse
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decode scan response from tab %d: %w", tab.ID, err)
	}
	return &page, nil
}

func (s *Scanner) injectionDelay() time.Duration {
	if ms := viper.GetInt(key.ScanInjectionDelayMs); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultInjectionDelay
}

func failure(videoURL, reason string) protocol.ScanSourcePageResponse {
	return protocol.ScanSourcePageResponse{
		Success:  false,
		VideoURL: videoURL,
		Error:    reason,
	}
}

// wait sleeps for the given duration unless the context expires first.
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

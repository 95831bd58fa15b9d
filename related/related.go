// Package related finds episodes of the same series within a pool of candidate URLs.
package related

import (
	"strings"

	"github.com/episodic-ext/episodic/episode"
	"github.com/episodic-ext/episodic/log"
	"github.com/episodic-ext/episodic/match"
	"golang.org/x/exp/slices"
)

// Direction selects which neighbors of the reference episode survive filtering.
type Direction string

const (
	Next     Direction = "next"
	Previous Direction = "previous"
	All      Direction = "all"
)

// ParseDirection validates a wire-level direction string.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Next, Previous, All:
		return Direction(s), true
	default:
		return "", false
	}
}

// Find parses the reference URL and every candidate, keeps the candidates that
// belong to the reference's series, applies the season, direction and quality
// gates, and returns the survivors ordered ascending by (season, episode).
//
// A reference URL that does not parse yields an empty result: without a
// reference episode there is no notion of relatedness.
func Find(currentURL string, candidateURLs []string, direction Direction) []*episode.Episode {
	reference, ok := episode.Parse(currentURL).Get()
	if !ok {
		log.Debugf("related: reference %q is not an episode", currentURL)
		return nil
	}

	var found []*episode.Episode
	for _, candidateURL := range candidateURLs {
		if candidateURL == currentURL {
			continue
		}

		candidate, ok := episode.Parse(candidateURL).Get()
		if !ok {
			continue
		}
		if !keep(reference, candidate, direction) {
			continue
		}

		found = append(found, candidate)
	}

	slices.SortStableFunc(found, func(a, b *episode.Episode) int {
		if c := seasonOrZero(a) - seasonOrZero(b); c != 0 {
			return c
		}
		return a.Number - b.Number
	})

	return found
}

// keep applies the same-series, season, direction and quality gates to one candidate.
func keep(reference, candidate *episode.Episode, direction Direction) bool {
	if !match.SameSeries(reference.SeriesName, candidate.SeriesName) {
		return false
	}

	// Season only filters when both sides specify one.
	refSeason, refHas := reference.Season.Get()
	candSeason, candHas := candidate.Season.Get()
	if refHas && candHas && refSeason != candSeason {
		return false
	}

	switch direction {
	case Next:
		if candidate.Number <= reference.Number {
			return false
		}
	case Previous:
		if candidate.Number >= reference.Number {
			return false
		}
	}

	// Prefer same-quality releases when quality information exists on both sides.
	refQuality, refHasQ := reference.Quality.Get()
	candQuality, candHasQ := candidate.Quality.Get()
	if refHasQ && candHasQ && !strings.EqualFold(refQuality, candQuality) {
		return false
	}

	return true
}

func seasonOrZero(e *episode.Episode) int {
	return e.Season.OrElse(0)
}

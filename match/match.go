// Package match decides whether two series names refer to the same series.
package match

import (
	"strings"
	"unicode/utf8"

	"github.com/episodic-ext/episodic/key"
	"github.com/episodic-ext/episodic/util"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/spf13/viper"
)

// DefaultSimilarityThreshold is the similarity score above which two
// non-identical series names are still judged to be the same series.
const DefaultSimilarityThreshold = 0.8

// Normalize returns a lowercased, trimmed string for consistent comparison.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Similarity scores two normalized series names in [0, 1] via classic
// edit-distance normalization: 1 - distance/max(len). It is pure, symmetric
// and deterministic; either string empty scores 0.
func Similarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	// The edit distance counts runes, so the normalizing length must too, or
	// multibyte names score inflated.
	distance := levenshtein.Distance(a, b)
	longest := util.Max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return 1 - float64(distance)/float64(longest)
}

// SameSeries reports whether two series names plausibly belong to the same
// series: exact equality after normalization, substring containment either
// way, or a similarity score above the configured threshold.
func SameSeries(a, b string) bool {
	a, b = Normalize(a), Normalize(b)
	if a == "" || b == "" {
		return false
	}

	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	return Similarity(a, b) > threshold()
}

func threshold() float64 {
	if t := viper.GetFloat64(key.MatchSimilarityThreshold); t > 0 {
		return t
	}
	return DefaultSimilarityThreshold
}

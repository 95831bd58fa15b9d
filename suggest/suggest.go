// Package suggest offers series-name completions drawn from the watch history.
package suggest

import (
	"strings"

	"github.com/episodic-ext/episodic/history"
	"github.com/episodic-ext/episodic/key"
	"github.com/episodic-ext/episodic/series"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

var suggestionCache = make(map[string][]*series.Series)

// Suggest returns the most relevant watched series for a partial input.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns watched series names matching the partial input, most
// watched first, capped at the configured limit.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SuggestEnabled) {
		return []string{}
	}

	q = sanitize(q)
	var matched []*series.Series

	if prev, ok := suggestionCache[q]; ok {
		matched = prev
	} else {
		saved, err := history.Get()
		if err != nil || len(saved) == 0 {
			return []string{}
		}

		for _, s := range series.Group(saved) {
			if fuzzy.MatchNormalizedFold(q, s.Name) {
				matched = append(matched, s)
			}
		}

		slices.SortFunc(matched, func(a, b *series.Series) int {
			return len(b.Episodes) - len(a.Episodes) // Descending popularity
		})

		suggestionCache[q] = matched
	}

	if limit := viper.GetInt(key.SuggestLimit); limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return lo.Map(matched, func(s *series.Series, _ int) string {
		return s.Name
	})
}

// Invalidate drops memoized suggestions after the history changes.
func Invalidate() {
	suggestionCache = make(map[string][]*series.Series)
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}

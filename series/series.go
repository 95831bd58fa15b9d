// Package series collapses watch history entries into per-series views.
package series

import (
	"fmt"
	"strings"

	"github.com/episodic-ext/episodic/history"
	"github.com/episodic-ext/episodic/match"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Series aggregates the watched episodes that belong to one show.
type Series struct {
	Name     string
	Episodes []*history.SavedVideo
}

func (s *Series) String() string {
	return fmt.Sprintf("%s : %d episodes", s.Name, len(s.Episodes))
}

// Watched counts the episodes of this series that passed the completion threshold.
func (s *Series) Watched() int {
	return lo.CountBy(s.Episodes, func(v *history.SavedVideo) bool {
		return v.Completed()
	})
}

// Group partitions history records into series using the same rule that
// relates episodes to each other. The first name seen for a group becomes the
// group's display name.
func Group(videos map[string]*history.SavedVideo) []*Series {
	// Map iteration order is random; sort keys so grouping is deterministic.
	urls := lo.Keys(videos)
	slices.Sort(urls)

	var grouped []*Series
	for _, url := range urls {
		video := videos[url]

		found := false
		for _, s := range grouped {
			if match.SameSeries(s.Name, video.SeriesName) {
				s.Episodes = append(s.Episodes, video)
				found = true
				break
			}
		}
		if !found {
			grouped = append(grouped, &Series{
				Name:     video.SeriesName,
				Episodes: []*history.SavedVideo{video},
			})
		}
	}

	for _, s := range grouped {
		slices.SortStableFunc(s.Episodes, func(a, b *history.SavedVideo) int {
			if c := seasonOrZero(a) - seasonOrZero(b); c != 0 {
				return c
			}
			return a.Episode - b.Episode
		})
	}

	slices.SortStableFunc(grouped, func(a, b *Series) int {
		return strings.Compare(a.Name, b.Name)
	})

	return grouped
}

func seasonOrZero(v *history.SavedVideo) int {
	if v.Season == nil {
		return 0
	}
	return *v.Season
}

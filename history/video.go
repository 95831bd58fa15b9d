package history

import (
	"fmt"

	"github.com/episodic-ext/episodic/episode"
	"github.com/episodic-ext/episodic/key"
	"github.com/spf13/viper"
)

// SavedVideo represents a single playback entry preserved in the user's history.
type SavedVideo struct {
	URL               string  `json:"url"`
	Title             string  `json:"title"`
	SeriesName        string  `json:"series_name"`
	Season            *int    `json:"season,omitempty"`
	Episode           int     `json:"episode"`
	Quality           string  `json:"quality,omitempty"`
	WatchedPercentage float64 `json:"watched_percentage"`
}

// encode derives the registry key for this entry. The video URL identifies a
// playback uniquely; rewatching the same URL updates one record.
func (s *SavedVideo) encode() string {
	return s.URL
}

func (s *SavedVideo) String() string {
	return fmt.Sprintf("%s : %.0f%%", s.Title, s.WatchedPercentage)
}

// Completed reports whether this entry passed the configured completion
// percentage and counts as watched.
func (s *SavedVideo) Completed() bool {
	return s.WatchedPercentage >= viper.GetFloat64(key.HistoryCompletionPercentage)
}

func newSavedVideo(e *episode.Episode) *SavedVideo {
	return &SavedVideo{
		URL:        e.URL,
		Title:      e.Title,
		SeriesName: e.SeriesName,
		Season:     e.Season.ToPointer(),
		Episode:    e.Number,
		Quality:    e.Quality.OrElse(""),
	}
}

// Package episode extracts structured episode metadata from video URLs and filenames.
package episode

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// Episode holds the structural metadata recovered from a single video filename.
// It is derived on demand and never persisted as-is.
type Episode struct {
	// Direct URL to the video file.
	URL string `json:"url"`
	// Synthesized display string, e.g. "My Show S02E05".
	Title string `json:"title"`
	// Normalized series name, e.g. "My Show".
	SeriesName string `json:"seriesName"`
	// Season number, absent when the filename carries no season marker.
	Season mo.Option[int] `json:"season"`
	// Episode number. Always present; a filename without one does not parse.
	Number int `json:"episode"`
	// Quality tag, e.g. "1080p" or "x264". Absent when no marker was found.
	Quality mo.Option[string] `json:"quality"`
	// Filename as it appeared in the URL path, before extension stripping.
	OriginalFilename string `json:"originalFilename"`
}

// UnknownSeries is the series name assigned when a filename starts directly
// with its episode token and leaves nothing to name the series by.
const UnknownSeries = "Unknown Series"

func (e *Episode) String() string {
	return e.Title
}

// synthesizeTitle builds the display title from the extracted parts.
func synthesizeTitle(seriesName string, season mo.Option[int], number int) string {
	if s, ok := season.Get(); ok {
		return fmt.Sprintf("%s S%02dE%02d", seriesName, s, number)
	}
	return fmt.Sprintf("%s E%02d", seriesName, number)
}

// NormalizeSeriesName collapses filename separators into single spaces and trims the result.
func NormalizeSeriesName(raw string) string {
	replaced := separatorRuns.ReplaceAllString(raw, " ")
	return strings.Join(strings.Fields(replaced), " ")
}

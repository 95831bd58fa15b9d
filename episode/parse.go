package episode

import (
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/episodic-ext/episodic/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// VideoExtensions is the allow-list of file extensions treated as video files,
// shared by the parser and the in-page link detector.
var VideoExtensions = []string{
	".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv",
	".webm", ".m4v", ".mpg", ".mpeg", ".3gp", ".ogv", ".ts",
}

// HasVideoExtension reports whether the path ends in a known video file extension.
func HasVideoExtension(p string) bool {
	return lo.Contains(VideoExtensions, strings.ToLower(path.Ext(p)))
}

// StripVideoExtension removes a known video extension from the filename.
// Stripping is best-effort: an unrecognized extension is left in place.
func StripVideoExtension(filename string) string {
	if HasVideoExtension(filename) {
		return strings.TrimSuffix(filename, path.Ext(filename))
	}
	return filename
}

// separatorRuns matches runs of the separator characters media filenames use in place of spaces.
var separatorRuns = regexp.MustCompile(`[._\-]+`)

// qualityPatterns are tried in order; the first match wins. Resolution markers
// outrank definition markers, which outrank codec and source markers.
var qualityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d{3,4}p|4K|UHD)\b`),
	regexp.MustCompile(`(?i)\b(FHD|HD|SD)\b`),
	regexp.MustCompile(`(?i)\b(x264|x265|HEVC|AVC)\b`),
	regexp.MustCompile(`(?i)\b(BluRay|WEBRip|HDTV|DVDRip)\b`),
}

// episodePatterns is the ordered list of season/episode extractors. The order is
// a strict precedence rule, not a best-match search: looser patterns (a bare
// 2-digit token matches almost anything) must only apply when every stricter
// form is absent from the filename.
var episodePatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"season-episode", regexp.MustCompile(`(?i)s(?P<season>\d{1,2})e(?P<episode>\d{1,3})`)},
	{"episode-word", regexp.MustCompile(`(?i)(?:^|[\s._\-(\[])(?:episode|ep|e)[\s._\-]?(?P<episode>\d{1,3})`)},
	{"bracketed", regexp.MustCompile(`[(\[](?P<episode>\d{1,3})[)\]]`)},
	{"part", regexp.MustCompile(`(?i)(?:^|[\s._\-])part[\s._\-]?(?P<episode>\d{1,3})`)},
	{"bare-number", regexp.MustCompile(`(?:^|[\s._\-])(?P<episode>\d{2,3})(?:[\s._\-]|$)`)},
}

// seasonEpisodeMatch records what an episode pattern extracted and where its token begins.
type seasonEpisodeMatch struct {
	season  mo.Option[int]
	episode int
	start   int
}

// Parse extracts episode metadata from a video URL.
//
// A URL that yields no recognizable episode number produces an absent result,
// not an error; that is the single hard failure mode of this parser. Parsing is
// pure: the same URL always yields the same output.
func Parse(rawURL string) mo.Option[*Episode] {
	u, err := url.Parse(rawURL)
	if err != nil {
		log.Debugf("unparseable video url %q: %v", rawURL, err)
		return mo.None[*Episode]()
	}

	segment := path.Base(u.Path)
	if decoded, err := url.PathUnescape(segment); err == nil {
		segment = decoded
	}
	if segment == "" || segment == "." || segment == "/" {
		return mo.None[*Episode]()
	}

	filename := StripVideoExtension(segment)

	m, ok := extractSeasonEpisode(filename)
	if !ok {
		return mo.None[*Episode]()
	}

	seriesName := NormalizeSeriesName(filename[:m.start])
	if m.start == 0 || seriesName == "" {
		seriesName = UnknownSeries
	}

	return mo.Some(&Episode{
		URL:              rawURL,
		Title:            synthesizeTitle(seriesName, m.season, m.episode),
		SeriesName:       seriesName,
		Season:           m.season,
		Number:           m.episode,
		Quality:          extractQuality(filename),
		OriginalFilename: segment,
	})
}

// extractQuality runs the ordered quality pattern pass. Quality extraction is
// independent of episode extraction; a file with no quality token still parses.
func extractQuality(filename string) mo.Option[string] {
	for _, re := range qualityPatterns {
		if match := re.FindString(filename); match != "" {
			return mo.Some(match)
		}
	}
	return mo.None[string]()
}

// extractSeasonEpisode evaluates the episode patterns in their fixed sequence
// and returns early on the first one that matches anywhere in the filename.
func extractSeasonEpisode(filename string) (seasonEpisodeMatch, bool) {
	for _, p := range episodePatterns {
		loc := p.re.FindStringSubmatchIndex(filename)
		if loc == nil {
			continue
		}

		ei := p.re.SubexpIndex("episode")
		number, err := strconv.Atoi(filename[loc[2*ei]:loc[2*ei+1]])
		if err != nil {
			continue
		}

		season := mo.None[int]()
		if si := p.re.SubexpIndex("season"); si > 0 && loc[2*si] >= 0 {
			if s, err := strconv.Atoi(filename[loc[2*si]:loc[2*si+1]]); err == nil {
				season = mo.Some(s)
			}
		}

		return seasonEpisodeMatch{season: season, episode: number, start: loc[0]}, true
	}

	return seasonEpisodeMatch{}, false
}

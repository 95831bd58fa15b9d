package episode

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// matchNothing never matches any input. It signals "no such episode" when a
// requested offset walks past the first episode of a series.
var matchNothing = regexp.MustCompile(`\b\B`)

// separatorClass matches any single filename separator, so a series name parsed
// as "My Show" recognizes "My.Show", "My_Show" and "My-Show" interchangeably.
const separatorClass = `[\s._\-]+`

// SiblingPattern builds a case-insensitive matcher recognizing the filename of
// a neighboring episode at Number+offset within the same series.
//
// All regex metacharacters in the series name are escaped before assembly;
// hand-built pattern strings are a correctness-sensitive hotspot and every
// dynamic part below goes through QuoteMeta or is a fixed digit alternation.
func SiblingPattern(ep *Episode, offset int) *regexp.Regexp {
	target := ep.Number + offset
	if target < 1 {
		return matchNothing
	}

	var b strings.Builder
	b.WriteString(`(?i)`)
	b.WriteString(quoteSeriesName(ep.SeriesName))
	b.WriteString(separatorClass)

	if season, ok := ep.Season.Get(); ok {
		b.WriteString(`s`)
		b.WriteString(digitAlternatives(season))
		b.WriteString(`e`)
	} else {
		b.WriteString(`e(?:pisode)?[\s._\-]?`)
	}
	b.WriteString(digitAlternatives(target))

	return regexp.MustCompile(b.String())
}

// quoteSeriesName escapes the series name while keeping its internal separators
// interchangeable with any other separator character.
func quoteSeriesName(name string) string {
	words := strings.Fields(name)
	quoted := lo.Map(words, func(word string, _ int) string {
		return regexp.QuoteMeta(word)
	})
	return strings.Join(quoted, separatorClass)
}

// digitAlternatives accepts a number written bare, zero-padded to 2 digits, or
// zero-padded to 3 digits.
func digitAlternatives(n int) string {
	forms := lo.Uniq([]string{
		fmt.Sprintf("%d", n),
		fmt.Sprintf("%02d", n),
		fmt.Sprintf("%03d", n),
	})
	return fmt.Sprintf(`(?:%s)`, strings.Join(forms, "|"))
}

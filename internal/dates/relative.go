// Package dates turns the listing endpoint's free-text relative timestamps
// ("2 weeks ago", "an hour ago") into absolute instants.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day  // approximation, not calendar-aware
	year  = 365 * day // approximation, not calendar-aware
)

// Quantity patterns are checked before the singular a/an forms, in fixed unit
// order, so malformed input that happens to match twice resolves stably.
var quantityPatterns = []struct {
	re   *regexp.Regexp
	unit time.Duration
}{
	{regexp.MustCompile(`(\d+)\s*second[s]?\s+ago`), time.Second},
	{regexp.MustCompile(`(\d+)\s*minute[s]?\s+ago`), time.Minute},
	{regexp.MustCompile(`(\d+)\s*hour[s]?\s+ago`), time.Hour},
	{regexp.MustCompile(`(\d+)\s*day[s]?\s+ago`), day},
	{regexp.MustCompile(`(\d+)\s*week[s]?\s+ago`), week},
	{regexp.MustCompile(`(\d+)\s*month[s]?\s+ago`), month},
	{regexp.MustCompile(`(\d+)\s*year[s]?\s+ago`), year},
}

var singularPatterns = []struct {
	re   *regexp.Regexp
	unit time.Duration
}{
	{regexp.MustCompile(`an?\s+second\s+ago`), time.Second},
	{regexp.MustCompile(`an?\s+minute\s+ago`), time.Minute},
	{regexp.MustCompile(`an?\s+hour\s+ago`), time.Hour},
	{regexp.MustCompile(`an?\s+day\s+ago`), day},
	{regexp.MustCompile(`an?\s+week\s+ago`), week},
	{regexp.MustCompile(`an?\s+month\s+ago`), month},
	{regexp.MustCompile(`an?\s+year\s+ago`), year},
}

// Resolve parses a relative-date phrase against ref. The second return value
// is false when the text is empty or matches no supported pattern.
func Resolve(text string, ref time.Time) (time.Time, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return time.Time{}, false
	}

	switch text {
	case "just now", "now", "today":
		return ref, true
	}
	if strings.Contains(text, "yesterday") {
		return ref.Add(-day), true
	}

	for _, p := range quantityPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return ref.Add(-time.Duration(n) * p.unit), true
	}

	for _, p := range singularPatterns {
		if p.re.MatchString(text) {
			return ref.Add(-p.unit), true
		}
	}

	return time.Time{}, false
}

package app

import (
	"regexp"
	"strconv"
	"time"

	"gmaps_reviews/internal/dates"
	"gmaps_reviews/internal/domain"
)

// Positions inside the raw per-review array, as observed from the endpoint:
//
//	[0]            review ID
//	[1]            metadata
//	  [1][2]       review timestamp (epoch microseconds)
//	  [1][4][5]    user info: [0] name, [2][0] profile URL, [10][0] "N reviews"
//	  [1][6]       relative date
//	[2]            content: [0][0] rating, [15][0][0] text
//	[3]            owner response (optional): [1] timestamp, [3] relative
//	               date, [14][0][0] text

var digitRun = regexp.MustCompile(`\d+`)

// overridable in tests
var timeNow = time.Now

// MapReview maps one raw per-review array onto a ReviewRecord. It never
// fails: any structural anomaly leaves the affected field at its default and
// the remaining fields are still extracted.
func MapReview(raw any) domain.ReviewRecord {
	now := timeNow()
	rec := domain.ReviewRecord{RetrievalDate: now}

	arr, ok := raw.([]any)
	if !ok || len(arr) < 2 {
		return rec
	}

	if v := item(arr, 0); truthy(v) {
		rec.ReviewID = stringify(v)
	}

	meta := item(arr, 1)
	if t := microsTime(item(meta, 2)); t != nil {
		rec.TextDate = t
	}
	user := dig(meta, 4, 5)
	if v := item(user, 0); truthy(v) {
		rec.UserName = stringify(v)
	}
	if v := dig(user, 2, 0); v != nil {
		rec.UserURL = stringify(v)
	}
	if v := dig(user, 10, 0); v != nil {
		rec.UserReviews = firstInt(stringify(v))
	}
	if v := item(meta, 6); truthy(v) {
		rec.RelativeDate = stringify(v)
	}

	content := item(arr, 2)
	if f, ok := num(dig(content, 0, 0)); ok {
		rec.Rating = f
	}
	if s, ok := dig(content, 15, 0, 0).(string); ok {
		rec.Text = s
	}

	resp := item(arr, 3)
	if t := microsTime(item(resp, 1)); t != nil {
		rec.ResponseTextDate = t
	}
	if v := item(resp, 3); truthy(v) {
		rec.ResponseRelativeDate = stringify(v)
	}
	if s, ok := dig(resp, 14, 0, 0).(string); ok {
		rec.ResponseText = s
	}

	// Fall back to the relative phrasing when no timestamp was present.
	if rec.RelativeDate != "" && rec.TextDate == nil {
		if t, ok := dates.Resolve(rec.RelativeDate, now); ok {
			rec.TextDate = &t
		}
	}
	if rec.ResponseRelativeDate != "" && rec.ResponseTextDate == nil {
		if t, ok := dates.Resolve(rec.ResponseRelativeDate, now); ok {
			rec.ResponseTextDate = &t
		}
	}

	return rec
}

// firstInt extracts the first digit run from free text like "123 reviews".
func firstInt(s string) int {
	m := digitRun.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

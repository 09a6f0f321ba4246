package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"gmaps_reviews/internal/domain"
)

// envelopePrefix is the fixed anti-JSON-hijacking literal the endpoint
// prepends to every response.
const envelopePrefix = ")]}'"

// ParseEnvelope strips the security prefix and decodes the remainder as the
// top-level JSON array. The error message carries a truncated snippet of the
// offending payload.
func ParseEnvelope(raw string) ([]any, error) {
	raw = strings.TrimPrefix(raw, envelopePrefix)

	var env []any
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("envelope parse (%q): %w", snippet(raw, 80), err)
	}
	return env, nil
}

// ExtractCursor returns the pagination token at envelope slot 1, or "" when
// the slot is missing or empty. An empty cursor means no further pages.
func ExtractCursor(env []any) string {
	if len(env) > 1 && truthy(env[1]) {
		return stringify(env[1])
	}
	return ""
}

// ExtractRecords reads the review array at envelope slot 2. Each element is a
// wrapper array whose first element holds the raw per-review array; anything
// that is not a non-empty array is skipped.
func ExtractRecords(env []any) []domain.ReviewRecord {
	var out []domain.ReviewRecord
	if len(env) < 3 {
		return out
	}
	wrappers, ok := env[2].([]any)
	if !ok {
		return out
	}
	for _, w := range wrappers {
		wrapper, ok := w.([]any)
		if !ok || len(wrapper) == 0 {
			continue
		}
		out = append(out, MapReview(wrapper[0]))
	}
	return out
}

func snippet(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

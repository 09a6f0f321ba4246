package app

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Accessors over the generic JSON tree the listing endpoint returns. The
// upstream schema is positional and loosely typed; every accessor tolerates
// missing elements and type mismatches by returning the zero value, so a
// malformed branch degrades one field instead of failing the record.

// item returns the i-th element of v when v is an array large enough, nil otherwise.
func item(v any, i int) any {
	arr, ok := v.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return nil
	}
	return arr[i]
}

// dig follows a chain of positional indexes.
func dig(v any, path ...int) any {
	for _, i := range path {
		v = item(v, i)
	}
	return v
}

// num reports v as a number. JSON numbers decode as float64.
func num(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// truthy mirrors the upstream convention that nil, empty strings, zero and
// empty arrays mean "absent".
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	}
	return true
}

// stringify renders a scalar the way it appears in tokens and identifiers.
// Integral floats drop the fractional part since upstream IDs are integers
// that merely arrive as JSON numbers.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// microsTime interprets v as an epoch-microsecond timestamp. Malformed or
// out-of-range values yield nil.
func microsTime(v any) *time.Time {
	var micros int64
	switch t := v.(type) {
	case float64:
		if t <= 0 || t > math.MaxInt64 {
			return nil
		}
		micros = int64(t)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil || n <= 0 {
			return nil
		}
		micros = n
	default:
		return nil
	}
	ts := time.UnixMicro(micros)
	if ts.Year() > 9999 {
		return nil
	}
	return &ts
}

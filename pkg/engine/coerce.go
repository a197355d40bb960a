package engine

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// toNumber coerces the shapes a decoded JSON body or an already normalized
// record can carry into a float64. Numeric strings convert, matching the
// behavior callers expect from form-encoded bodies.
func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// toDate accepts time.Time, RFC 3339 or date-only strings, and epoch
// milliseconds.
func toDate(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t, true
		}
		return time.Time{}, false
	case float64:
		return time.UnixMilli(int64(v)).UTC(), true
	case int64:
		return time.UnixMilli(v).UTC(), true
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	default:
		return time.Time{}, false
	}
}

// roundTo rounds half away from zero to the given number of decimal digits.
func roundTo(v float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	return math.Round(v*pow) / pow
}

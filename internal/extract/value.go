package extract

import (
	"strconv"
	"strings"
)

// ParseCount interprets a raw metadata scalar as a non-negative integer
// counter. exiftool's -n flag yields JSON numbers (float64 after
// decoding), but string-typed values still appear for unknown maker-note
// tags. Negative or fractional values are rejected.
func ParseCount(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		if t < 0 {
			return 0, false
		}
		return int64(t), true
	case int64:
		if t < 0 {
			return 0, false
		}
		return t, true
	case float64:
		if t < 0 || t != float64(int64(t)) {
			return 0, false
		}
		return int64(t), true
	case float32:
		return ParseCount(float64(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

package option

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration converts a user-supplied duration string to a
// time.Duration. Supported spellings are CSS-like: "250ms", "0.3s", and a
// bare number, which counts as milliseconds. The boolean result reports
// whether the input was numeric at all; callers treat false as zero per
// the engine's silent-coercion policy.
func ParseDuration(v string) (time.Duration, bool) {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return 0, false
	}
	unit := time.Millisecond
	switch {
	case strings.HasSuffix(v, "ms"):
		v = strings.TrimSpace(strings.TrimSuffix(v, "ms"))
	case strings.HasSuffix(v, "s"):
		v = strings.TrimSpace(strings.TrimSuffix(v, "s"))
		unit = time.Second
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return time.Duration(f * float64(unit)), true
}

// FormatDelay renders a duration the way it is written into a CSS
// animation-delay or transition-delay declaration, in milliseconds.
func FormatDelay(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)
	return strconv.FormatFloat(ms, 'f', -1, 64) + "ms"
}

// Package format holds small display helpers shared by the TUI and API
// layers.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Magnitude renders a count with a K/M suffix at one decimal place.
// Values below a thousand render as plain integers. The K bucket holds
// everything under an exact million, so 999999 renders as "1000.0K" and
// never rounds up into "1.0M".
func Magnitude(n float64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	default:
		return strconv.FormatInt(int64(n), 10)
	}
}

// TitleCase prettifies a snake_case identifier for display: underscores
// become spaces and each word's first letter is capitalized. Letters
// mid-word are left untouched.
func TitleCase(snake string) string {
	words := strings.Split(snake, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// DaysSince returns the elapsed whole days between t and now, rounded up
// and clamped at zero. Day granularity is for display summaries; tier
// classification works in hours.
func DaysSince(t, now time.Time) int {
	elapsed := now.Sub(t)
	if elapsed <= 0 {
		return 0
	}
	return int(math.Ceil(elapsed.Hours() / 24))
}

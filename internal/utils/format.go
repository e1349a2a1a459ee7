package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// TimeAgo formats t relative to now: "Just now" under an hour,
// hours under a day, days otherwise.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Hour:
		return "Just now"
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimRight(string(r[:n]), " ") + "..."
}

package utils

import (
	"strconv"
	"strings"
)

// ParseID parses a positive database id. It rejects zero, negatives,
// signs, whitespace and anything that is not a plain base-10 integer.
func ParseID(s string) (uint, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// ParseLimit parses a page size. An empty value yields def; anything that
// is not an integer within [1, max] is rejected.
func ParseLimit(s string, def, max int) (int, bool) {
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > max {
		return 0, false
	}
	return n, true
}

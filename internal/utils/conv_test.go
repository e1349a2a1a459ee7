package utils

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want uint
		ok   bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{" 7 ", 7, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"+3", 0, false},
		{"abc", 0, false},
		{"1.5", 0, false},
		{"", 0, false},
		{"99999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := qt.New(t)
			got, ok := ParseID(tt.in)
			c.Assert(ok, qt.Equals, tt.ok)
			c.Assert(got, qt.Equals, tt.want)
		})
	}
}

func TestParseLimit(t *testing.T) {
	c := qt.New(t)

	n, ok := ParseLimit("", 50, 200)
	c.Assert(ok, qt.IsTrue)
	c.Assert(n, qt.Equals, 50)

	n, ok = ParseLimit("10", 50, 200)
	c.Assert(ok, qt.IsTrue)
	c.Assert(n, qt.Equals, 10)

	for _, bad := range []string{"0", "-1", "201", "ten"} {
		_, ok := ParseLimit(bad, 50, 200)
		c.Assert(ok, qt.IsFalse, qt.Commentf("limit %q", bad))
	}
}

package utils

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestTTLCache(t *testing.T) {
	c := qt.New(t)

	cache, err := NewTTLCache[string](2, time.Minute)
	c.Assert(err, qt.IsNil)

	now := time.Date(2024, 9, 20, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("a", "alpha")
	got, ok := cache.Get("a")
	c.Assert(ok, qt.IsTrue)
	c.Assert(got, qt.Equals, "alpha")

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("a")
	c.Assert(ok, qt.IsFalse)
	c.Assert(cache.Len(), qt.Equals, 0)
}

func TestTTLCacheEvictsAndDeletes(t *testing.T) {
	c := qt.New(t)

	cache, err := NewTTLCache[int](2, time.Hour)
	c.Assert(err, qt.IsNil)

	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Set("c", 3)
	_, ok := cache.Get("a")
	c.Assert(ok, qt.IsFalse)

	cache.Delete("b")
	_, ok = cache.Get("b")
	c.Assert(ok, qt.IsFalse)

	v, ok := cache.Get("c")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 3)
}

func TestNewTTLCacheRejectsBadSize(t *testing.T) {
	_, err := NewTTLCache[int](0, time.Second)
	qt.New(t).Assert(err, qt.IsNotNil)
}

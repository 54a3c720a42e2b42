package cache

import (
	"testing"
	"time"
)

func TestGetMissOnUnknownKey(t *testing.T) {
	c := New(5*time.Minute, 30*time.Minute)
	if _, freshness := c.Get("employees:list"); freshness != Miss {
		t.Fatalf("expected miss, got %v", freshness)
	}
}

func TestFreshnessTransitions(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := New(5*time.Minute, 30*time.Minute, WithClock(clock))

	c.Set("employees:list", []string{"a", "b"})

	value, freshness := c.Get("employees:list")
	if freshness != Fresh {
		t.Fatalf("expected fresh, got %v", freshness)
	}
	if got := value.([]string); len(got) != 2 {
		t.Fatalf("unexpected value: %v", got)
	}

	now = now.Add(6 * time.Minute)
	if _, freshness = c.Get("employees:list"); freshness != Stale {
		t.Fatalf("expected stale after fresh window, got %v", freshness)
	}

	now = now.Add(25 * time.Minute)
	if _, freshness = c.Get("employees:list"); freshness != Miss {
		t.Fatalf("expected miss after retention window, got %v", freshness)
	}
}

func TestInvalidateForcesMiss(t *testing.T) {
	c := New(5*time.Minute, 30*time.Minute)
	c.Set("departments:list", 1)
	c.Invalidate("departments:list")
	if _, freshness := c.Get("departments:list"); freshness != Miss {
		t.Fatalf("expected miss after invalidate, got %v", freshness)
	}
}

func TestSetRefreshesEntry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := New(5*time.Minute, 30*time.Minute, WithClock(clock))

	c.Set("roles:list", "old")
	now = now.Add(10 * time.Minute)
	c.Set("roles:list", "new")

	value, freshness := c.Get("roles:list")
	if freshness != Fresh {
		t.Fatalf("expected fresh after overwrite, got %v", freshness)
	}
	if value != "new" {
		t.Fatalf("unexpected value: %v", value)
	}
}

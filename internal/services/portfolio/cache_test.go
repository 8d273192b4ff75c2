package portfolio

import (
	"testing"
	"time"

	"github.com/priyanshps/fundtrack/internal/models"
)

func TestResultCache_GetSet(t *testing.T) {
	c := NewResultCache(24 * time.Hour)

	if _, ok := c.Get("u1"); ok {
		t.Error("Get on empty cache returned a value")
	}

	result := &models.RefreshResult{Message: "hello"}
	c.Set("u1", result)

	got, ok := c.Get("u1")
	if !ok {
		t.Fatal("Get after Set returned no value")
	}
	if got != result {
		t.Error("Get returned a different value than Set stored")
	}
}

func TestResultCache_TTLExpiry(t *testing.T) {
	c := NewResultCache(24 * time.Hour)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("u1", &models.RefreshResult{Message: "hello"})

	c.now = func() time.Time { return base.Add(23 * time.Hour) }
	if _, ok := c.Get("u1"); !ok {
		t.Error("entry expired before TTL")
	}

	c.now = func() time.Time { return base.Add(25 * time.Hour) }
	if _, ok := c.Get("u1"); ok {
		t.Error("entry survived past TTL")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expiry, want 0", c.Len())
	}
}

func TestResultCache_SetResetsTTL(t *testing.T) {
	c := NewResultCache(time.Hour)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("u1", &models.RefreshResult{Message: "first"})

	c.now = func() time.Time { return base.Add(50 * time.Minute) }
	c.Set("u1", &models.RefreshResult{Message: "second"})

	c.now = func() time.Time { return base.Add(100 * time.Minute) }
	got, ok := c.Get("u1")
	if !ok {
		t.Fatal("entry expired although the second write reset the TTL")
	}
	if got.Message != "second" {
		t.Errorf("Message = %q, want %q", got.Message, "second")
	}
}

func TestResultCache_Invalidate(t *testing.T) {
	c := NewResultCache(24 * time.Hour)
	c.Set("u1", &models.RefreshResult{Message: "hello"})

	c.Invalidate("u1")

	if _, ok := c.Get("u1"); ok {
		t.Error("Get after Invalidate returned a value")
	}

	// Invalidating an absent key is a no-op
	c.Invalidate("u2")
}

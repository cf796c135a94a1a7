package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := New(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestInsightCache(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	if _, err := c.GetInsight(ctx, "u1"); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	if err := c.SetInsight(ctx, "u1", "Vitals look within normal range. Keep it up!"); err != nil {
		t.Fatalf("SetInsight error: %v", err)
	}

	got, err := c.GetInsight(ctx, "u1")
	if err != nil {
		t.Fatalf("GetInsight error: %v", err)
	}
	if got != "Vitals look within normal range. Keep it up!" {
		t.Errorf("unexpected insight text: %q", got)
	}

	if err := c.InvalidateInsight(ctx, "u1"); err != nil {
		t.Fatalf("InvalidateInsight error: %v", err)
	}
	if _, err := c.GetInsight(ctx, "u1"); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss after invalidation, got %v", err)
	}
}

func TestAuthRateLimitExhaustsBurst(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	const burst = 3
	for i := 0; i < burst; i++ {
		result, err := c.CheckAuthRateLimit(ctx, "10.0.0.1", 1, burst)
		if err != nil {
			t.Fatalf("CheckAuthRateLimit error: %v", err)
		}
		if !result.Allowed {
			t.Fatalf("request %d unexpectedly blocked", i)
		}
	}

	result, err := c.CheckAuthRateLimit(ctx, "10.0.0.1", 1, burst)
	if err != nil {
		t.Fatalf("CheckAuthRateLimit error: %v", err)
	}
	if result.Allowed {
		t.Fatal("expected request over burst to be blocked")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("expected positive RetryAfter, got %v", result.RetryAfter)
	}
}

func TestAuthRateLimitIsolatesClients(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	for i := 0; i < 3; i++ {
		if _, err := c.CheckAuthRateLimit(ctx, "10.0.0.1", 1, 3); err != nil {
			t.Fatalf("CheckAuthRateLimit error: %v", err)
		}
	}

	result, err := c.CheckAuthRateLimit(ctx, "10.0.0.2", 1, 3)
	if err != nil {
		t.Fatalf("CheckAuthRateLimit error: %v", err)
	}
	if !result.Allowed {
		t.Fatal("a different client must have its own bucket")
	}
}

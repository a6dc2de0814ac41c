package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 30, 8, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	type payload struct {
		Name  string
		Count int64
	}

	if err := cache.Set(ctx, "k", payload{Name: "car", Count: 3}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got payload
	if err := cache.Get(ctx, "k", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "car" || got.Count != 3 {
		t.Errorf("Get() = %+v", got)
	}

	now = now.Add(time.Minute)
	if err := cache.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after expiry error = %v, want ErrCacheMiss", err)
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d, want expired entry evicted", cache.Len())
	}

	t.Run("zero ttl never expires", func(t *testing.T) {
		if err := cache.Set(ctx, "forever", 1, 0); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		now = now.Add(24 * time.Hour)
		var n int
		if err := cache.Get(ctx, "forever", &n); err != nil || n != 1 {
			t.Errorf("Get() = %d, %v", n, err)
		}
	})
}

func TestMemoryCacheEvictsSupersededKeys(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	base := time.Unix(1700000000, 0)
	for i := 0; i < 5; i++ {
		key := CacheKey("counts", "/data/a_counts.csv", base.Add(time.Duration(i)*time.Second))
		if err := cache.Set(ctx, key, i, 0); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}
	if err := cache.Set(ctx, CacheKey("counts", "/data/b_counts.csv", base), 1, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want one entry per file", cache.Len())
	}

	var n int
	latest := CacheKey("counts", "/data/a_counts.csv", base.Add(4*time.Second))
	if err := cache.Get(ctx, latest, &n); err != nil || n != 4 {
		t.Errorf("Get(latest) = %d, %v", n, err)
	}
}

func TestMemoryCacheSweepsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	if err := cache.Set(ctx, "a", 1, time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	now = now.Add(2 * time.Second)
	if err := cache.Set(ctx, "b", 2, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want expired entry swept", cache.Len())
	}
}

func TestNoCache(t *testing.T) {
	c := NoCache()
	if c.Available() {
		t.Error("NoCache should not be available")
	}
	if err := c.Set(context.Background(), "k", 1, time.Minute); err != nil {
		t.Errorf("Set error = %v, want nil", err)
	}
	var n int
	if err := c.Get(context.Background(), "k", &n); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get error = %v, want ErrCacheMiss", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close error = %v", err)
	}
}

func TestCacheKey(t *testing.T) {
	t1 := time.Unix(100, 0)
	t2 := time.Unix(101, 0)
	a := CacheKey("counts", "/data/a_counts.csv", t1)
	if !strings.HasPrefix(a, "aforo:counts:/data/a_counts.csv:") {
		t.Errorf("CacheKey() = %q", a)
	}
	if a == CacheKey("counts", "/data/a_counts.csv", t2) {
		t.Error("different mtimes should give different keys")
	}
	if a == CacheKey("metadata", "/data/a_counts.csv", t1) {
		t.Error("different kinds should give different keys")
	}
}

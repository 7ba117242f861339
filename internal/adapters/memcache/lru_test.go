package memcache_test

import (
	"context"
	"testing"
	"time"

	"nyt_movies/internal/adapters/memcache"
	"nyt_movies/internal/domain"
)

func TestCache_ValuesAreCopies(t *testing.T) {
	c := memcache.New(8, time.Minute)
	ctx := context.Background()

	in := domain.ReviewsPage{Results: []domain.Review{{DisplayTitle: "Nope"}}}
	if err := c.Set(ctx, "k", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	in.Results[0].DisplayTitle = "mutated"

	var out domain.ReviewsPage
	ok, err := c.Get(ctx, "k", &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if out.Results[0].DisplayTitle != "Nope" {
		t.Fatalf("cache aliased caller data: %+v", out)
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	c := memcache.New(2, time.Minute)
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, domain.CriticsPage{Status: k}, 60)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	var out domain.CriticsPage
	if ok, _ := c.Get(ctx, "a", &out); ok {
		t.Fatalf("expected a to be evicted")
	}
	if ok, _ := c.Get(ctx, "c", &out); !ok || out.Status != "c" {
		t.Fatalf("expected c, got ok=%v %+v", ok, out)
	}
}

func TestCache_TTL(t *testing.T) {
	c := memcache.New(4, 20*time.Millisecond)
	ctx := context.Background()
	_ = c.Set(ctx, "k", domain.CriticsPage{Status: "OK"}, 60)
	time.Sleep(60 * time.Millisecond)

	var out domain.CriticsPage
	if ok, _ := c.Get(ctx, "k", &out); ok {
		t.Fatalf("expected expiry")
	}
}

func TestCache_Del(t *testing.T) {
	c := memcache.New(4, time.Minute)
	ctx := context.Background()
	_ = c.Set(ctx, "k", domain.CriticsPage{Status: "OK"}, 60)
	_ = c.Del(ctx, "k")

	var out domain.CriticsPage
	if ok, _ := c.Get(ctx, "k", &out); ok {
		t.Fatalf("expected miss after del")
	}
}

// Package memcache is the in-process Cache used when no Redis is configured.
package memcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"nyt_movies/internal/adapters/observability"
)

// Cache is a size-bounded LRU with one TTL for every entry. Values are stored
// as JSON so callers get the same copy semantics as with Redis.
//
// The expirable LRU has a single TTL; the per-call ttlSec is ignored.
type Cache struct {
	lru *expirable.LRU[string, []byte]
}

func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 512
	}
	return &Cache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (m *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := m.lru.Get(key)
	if !ok {
		observability.ObserveCache("lru", "miss")
		return false, nil
	}
	observability.ObserveCache("lru", "hit")
	return true, json.Unmarshal(b, dst)
}

func (m *Cache) Set(_ context.Context, key string, v any, _ int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("lru", "set")
	m.lru.Add(key, b)
	return nil
}

func (m *Cache) Del(_ context.Context, key string) error {
	observability.ObserveCache("lru", "del")
	m.lru.Remove(key)
	return nil
}

func (m *Cache) Len() int { return m.lru.Len() }

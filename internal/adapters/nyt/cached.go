package nyt

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"nyt_movies/internal/domain"
)

// CachedAPI is a read-through cache in front of a MovieAPI.
// Only successful pages are stored; concurrent misses for the same key share one upstream call.
// Calls under domain.WithRefresh drop the cached page and fetch it again.
type CachedAPI struct {
	next  domain.MovieAPI
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewCachedAPI(next domain.MovieAPI, cache domain.Cache, ttl time.Duration) *CachedAPI {
	return &CachedAPI{next: next, cache: cache, ttl: ttl}
}

func (c *CachedAPI) FetchReviews(ctx context.Context, q domain.ReviewQuery) (domain.ReviewsPage, error) {
	key := ReviewsKey(q)
	v, err := c.load(ctx, key, new(domain.ReviewsPage), func(ctx context.Context) (any, error) {
		return c.next.FetchReviews(ctx, q)
	})
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	return v.(domain.ReviewsPage), nil
}

func (c *CachedAPI) FetchCritics(ctx context.Context, q domain.CriticQuery) (domain.CriticsPage, error) {
	key := CriticsKey(q)
	v, err := c.load(ctx, key, new(domain.CriticsPage), func(ctx context.Context) (any, error) {
		return c.next.FetchCritics(ctx, q)
	})
	if err != nil {
		return domain.CriticsPage{}, err
	}
	return v.(domain.CriticsPage), nil
}

// load checks the cache, then collapses concurrent misses for key.
// dst must be a pointer to the page type fetch returns. The shared fetch runs
// detached from ctx cancellation so one caller going away does not fail the
// others waiting on it.
func (c *CachedAPI) load(ctx context.Context, key string, dst any, fetch func(context.Context) (any, error)) (any, error) {
	if domain.IsRefresh(ctx) {
		if err := c.cache.Del(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache del failed")
		}
		setOutcome(ctx, OutcomeBypass)
	} else if ok, err := c.cache.Get(ctx, key, dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
	} else if ok {
		setOutcome(ctx, OutcomeHit)
		return deref(dst), nil
	}

	detached := context.WithoutCancel(ctx)
	v, err, shared := c.group.Do(key, func() (any, error) {
		page, err := fetch(detached)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(detached, key, page, int(c.ttl.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
		return page, nil
	})
	if shared {
		log.Debug().Str("key", key).Msg("upstream call shared")
		setOutcome(ctx, OutcomeShared)
	} else if !domain.IsRefresh(ctx) {
		setOutcome(ctx, OutcomeMiss)
	}
	return v, err
}

func deref(p any) any {
	switch v := p.(type) {
	case *domain.ReviewsPage:
		return *v
	case *domain.CriticsPage:
		return *v
	}
	return p
}

func ReviewsKey(q domain.ReviewQuery) string {
	return fmt.Sprintf("reviews:%d:%s:%s", q.Offset, norm(q.Query), norm(q.Reviewer))
}

func CriticsKey(q domain.CriticQuery) string {
	return fmt.Sprintf("critics:%d:%s", q.Offset, norm(q.Query))
}

func norm(s string) string { return url.QueryEscape(s) }

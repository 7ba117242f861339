package app

import (
	"context"
	"fmt"

	"nyt_movies/internal/domain"
)

// WarmService pre-fetches pages through a caching MovieAPI so the first
// device request for them is served from cache.
type WarmService struct {
	api domain.MovieAPI
}

func NewWarmService(api domain.MovieAPI) *WarmService {
	return &WarmService{api: api}
}

// Critics pages through the critics list, at most maxPages pages.
func (s *WarmService) Critics(ctx context.Context, maxPages int) ([]domain.Critic, error) {
	p := NewPager[domain.Critic](CategoryCritics, func(ctx context.Context, _ string, offset int) (domain.CriticsPage, error) {
		return s.api.FetchCritics(ctx, domain.CriticQuery{Offset: offset})
	})
	critics, err := Collect(ctx, p, "", maxPages, nil)
	if err != nil {
		return critics, fmt.Errorf("list critics: %w", err)
	}
	return critics, nil
}

// WarmCritic fetches the first page of c's reviews and returns its size.
func (s *WarmService) WarmCritic(ctx context.Context, c domain.Critic) (int, error) {
	if c.DisplayName == "" {
		return 0, nil
	}
	page, err := s.api.FetchReviews(ctx, domain.ReviewQuery{Reviewer: c.DisplayName})
	if err != nil {
		return 0, fmt.Errorf("warm %q: %w", c.DisplayName, err)
	}
	return len(page.Results), nil
}

package app

import (
	"context"

	"nyt_movies/internal/domain"
)

// CriticReviews pages the reviews written by one critic.
type CriticReviews struct {
	critic domain.Critic
	pager  *Pager[domain.Review]
}

func NewCriticReviews(api domain.MovieAPI, c domain.Critic) *CriticReviews {
	return &CriticReviews{
		critic: c,
		pager: NewPager[domain.Review](CategoryReviews, func(ctx context.Context, _ string, offset int) (domain.ReviewsPage, error) {
			return api.FetchReviews(ctx, domain.ReviewQuery{Reviewer: c.DisplayName, Offset: offset})
		}),
	}
}

func (c *CriticReviews) Critic() domain.Critic { return c.critic }

// Setup performs the first load.
func (c *CriticReviews) Setup(ctx context.Context) (Reload, bool) {
	return c.pager.LoadPage(ctx, 0)
}

func (c *CriticReviews) ShouldLoadNextPage(ctx context.Context, index int) (Reload, bool) {
	return c.pager.ShouldLoadNextPage(ctx, index)
}

func (c *CriticReviews) Reviews() []domain.Review { return c.pager.Items() }
func (c *CriticReviews) Len() int                 { return c.pager.Len() }
func (c *CriticReviews) HasMore() bool            { return c.pager.HasMore() }

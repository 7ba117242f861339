package domain

import "context"

type MovieAPI interface {
	FetchReviews(ctx context.Context, q ReviewQuery) (ReviewsPage, error)
	FetchCritics(ctx context.Context, q CriticQuery) (CriticsPage, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Queries

type ReviewQuery struct {
	Query    string // free text, omitted when empty
	Reviewer string // critic display name, omitted when empty
	Offset   int
}

type CriticQuery struct {
	Query  string
	Offset int
}

// Page is the envelope every list endpoint answers with.
// Results keep the server's order.
type Page[T any] struct {
	Status     string `json:"status"`
	Copyright  string `json:"copyright"`
	NumResults int    `json:"num_results"`
	HasMore    bool   `json:"has_more"`
	Results    []T    `json:"results"`
}

type (
	ReviewsPage = Page[Review]
	CriticsPage = Page[Critic]
)

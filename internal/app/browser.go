package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"nyt_movies/internal/domain"
)

var ErrNoSuchCritic = errors.New("app: no critic at index")

// Browser coordinates the reviews and critics lists: category switching,
// server-side search, the local date filter and incremental paging.
//
// Methods block until their fetch completes and return the Reload the view
// should render; ok is false when there is nothing to render. They are safe
// to call from several goroutines.
type Browser struct {
	api     domain.MovieAPI
	filter  SearchFilter
	reviews *Pager[domain.Review]
	critics *Pager[domain.Critic]

	mu       sync.RWMutex
	category Category

	// held while the query is set and the load for it begins
	searchMu sync.Mutex
}

func NewBrowser(api domain.MovieAPI) *Browser {
	b := &Browser{api: api, category: CategoryReviews}
	b.reviews = NewPager[domain.Review](CategoryReviews, func(ctx context.Context, query string, offset int) (domain.ReviewsPage, error) {
		return api.FetchReviews(ctx, domain.ReviewQuery{Query: query, Offset: offset})
	})
	b.critics = NewPager[domain.Critic](CategoryCritics, func(ctx context.Context, query string, offset int) (domain.CriticsPage, error) {
		return api.FetchCritics(ctx, domain.CriticQuery{Query: query, Offset: offset})
	})
	return b
}

// Start loads the active list from offset 0. Cached pages are acceptable.
func (b *Browser) Start(ctx context.Context) (Reload, bool) {
	return b.beginLoad(nil)(ctx)
}

func (b *Browser) Category() Category {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.category
}

// SelectCategory switches the active list. The date filter is cleared and the
// newly selected list is emptied; callers follow up with Refresh.
func (b *Browser) SelectCategory(c Category) Reload {
	b.mu.Lock()
	b.category = c
	b.mu.Unlock()

	b.filter.ClearSince()
	switch c {
	case CategoryCritics:
		b.critics.Reset()
	default:
		b.reviews.Reset()
	}
	return Reload{Kind: ReloadCategorySwitch, Category: c}
}

// Refresh reloads the active list from offset 0, asking every cache on the
// way to fetch from upstream again.
func (b *Browser) Refresh(ctx context.Context) (Reload, bool) {
	return b.beginLoad(nil)(domain.WithRefresh(ctx))
}

// SearchChanged replaces the query and reloads the active list with it.
func (b *Browser) SearchChanged(ctx context.Context, text string) (Reload, bool) {
	return b.BeginSearch(text)(ctx)
}

// BeginSearch replaces the query and starts its load before returning; the
// returned func performs the fetch. Callers that cannot run SearchChanged in
// input order call BeginSearch in order and run the funcs anywhere.
func (b *Browser) BeginSearch(text string) func(context.Context) (Reload, bool) {
	return b.beginLoad(&text)
}

// beginLoad optionally sets the query, then begins the offset-0 load of the
// active list with the query as it stands.
func (b *Browser) beginLoad(text *string) func(context.Context) (Reload, bool) {
	b.searchMu.Lock()
	defer b.searchMu.Unlock()
	if text != nil {
		b.filter.SetQuery(*text)
	}
	q := b.filter.Query()
	if b.Category() == CategoryCritics {
		return b.critics.Search(q)
	}
	run := b.reviews.Search(q)
	return func(ctx context.Context) (Reload, bool) { return b.visible(run(ctx)) }
}

// SetQuery replaces the search text without fetching. Use it before Start.
func (b *Browser) SetQuery(text string) {
	b.searchMu.Lock()
	defer b.searchMu.Unlock()
	b.filter.SetQuery(text)
}

func (b *Browser) Query() string { return b.filter.Query() }

// FilterChanged applies a publication-date lower bound to the reviews
// already loaded. Nothing is fetched.
func (b *Browser) FilterChanged(since time.Time) Reload {
	b.filter.SetSince(since)
	n := len(b.filter.Apply(b.reviews.Items()))
	if n == 0 {
		return Reload{Kind: ReloadNoResults, Category: CategoryReviews}
	}
	return Reload{Kind: ReloadReplace, Category: CategoryReviews, Count: n}
}

func (b *Browser) ClearFilter() Reload {
	b.filter.ClearSince()
	return Reload{Kind: ReloadReplace, Category: CategoryReviews, Count: b.reviews.Len()}
}

func (b *Browser) Since() (time.Time, bool) { return b.filter.Since() }

// ShouldLoadNextPage is called with the index of the item the view is about
// to show. With a date filter active the index is into the filtered list.
// A negative index never loads.
func (b *Browser) ShouldLoadNextPage(ctx context.Context, index int) (Reload, bool) {
	if index < 0 {
		return Reload{}, false
	}
	if b.Category() == CategoryCritics {
		return b.critics.ShouldLoadNextPage(ctx, index)
	}

	items := b.reviews.Items()
	idx := b.filter.Apply(items)
	src := len(items) - 1
	if index+prefetchAhead <= len(idx) {
		src = idx[index]
	}
	return b.visible(b.reviews.ShouldLoadNextPage(ctx, src))
}

// Count is the number of items the active list shows.
func (b *Browser) Count() int {
	if b.Category() == CategoryCritics {
		return b.critics.Len()
	}
	return len(b.filter.Apply(b.reviews.Items()))
}

// Reviews returns the reviews that pass the date filter.
func (b *Browser) Reviews() []domain.Review {
	items := b.reviews.Items()
	idx := b.filter.Apply(items)
	out := make([]domain.Review, len(idx))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

func (b *Browser) Critics() []domain.Critic { return b.critics.Items() }

func (b *Browser) CriticAt(i int) (domain.Critic, bool) { return b.critics.At(i) }

func (b *Browser) HasMore() bool {
	if b.Category() == CategoryCritics {
		return b.critics.HasMore()
	}
	return b.reviews.HasMore()
}

// OpenCritic builds the detail coordinator for the critic at index i.
func (b *Browser) OpenCritic(i int) (*CriticReviews, error) {
	c, ok := b.critics.At(i)
	if !ok {
		return nil, ErrNoSuchCritic
	}
	return NewCriticReviews(b.api, c), nil
}

// visible rewrites a reviews reload so Count reflects the filtered list.
func (b *Browser) visible(r Reload, ok bool) (Reload, bool) {
	if !ok || r.Kind == ReloadError {
		return r, ok
	}
	if _, active := b.filter.Since(); active {
		r.Count = len(b.filter.Apply(b.reviews.Items()))
	}
	return r, ok
}

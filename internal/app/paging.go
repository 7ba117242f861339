package app

import (
	"context"
	"sync"

	"nyt_movies/internal/domain"
)

// prefetchAhead is how close to the end of the list a visible index must be
// before the next page is requested.
const prefetchAhead = 2

// Fetcher loads one page of the results for query starting at offset.
type Fetcher[T any] func(ctx context.Context, query string, offset int) (domain.Page[T], error)

// Pager owns one growable list and the paging state around it.
//
// Loads at offset 0 always run and supersede whatever is in flight; loads at
// a later offset are refused while another load is in flight. Each load
// carries the generation it started in, and a completion from an older
// generation is dropped, so a stale page is never appended after a replace.
// The query a load fetches is fixed when the load begins.
type Pager[T any] struct {
	fetch    Fetcher[T]
	category Category

	mu      sync.Mutex
	items   []T
	query   string
	hasMore bool
	loading bool
	gen     uint64
}

// load is one fetch as it was issued.
type load struct {
	gen    uint64
	offset int
	query  string
}

func NewPager[T any](c Category, fetch Fetcher[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch, category: c, hasMore: true}
}

// LoadPage fetches the page at offset for the current query and applies it.
// ok is false when nothing changed that a view should redraw: the load was
// refused because another one is in flight, or its result went stale.
func (p *Pager[T]) LoadPage(ctx context.Context, offset int) (Reload, bool) {
	l, started := p.begin(offset, nil)
	if !started {
		return Reload{}, false
	}
	return p.run(ctx, l)
}

// Search switches the query and supersedes every load in flight before it
// returns. The returned func performs the offset-0 load for query; when
// several searches are issued in order, only the last one is applied no
// matter in which order their loads run.
func (p *Pager[T]) Search(query string) func(context.Context) (Reload, bool) {
	l, _ := p.begin(0, &query)
	return func(ctx context.Context) (Reload, bool) { return p.run(ctx, l) }
}

func (p *Pager[T]) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// ShouldLoadNextPage requests the next page when index is within
// prefetchAhead of the end, more pages exist and nothing is in flight.
// A negative index never loads.
func (p *Pager[T]) ShouldLoadNextPage(ctx context.Context, index int) (Reload, bool) {
	p.mu.Lock()
	count := len(p.items)
	if index < 0 || !p.hasMore || index+prefetchAhead <= count || p.loading {
		p.mu.Unlock()
		return Reload{}, false
	}
	p.loading = true
	l := load{gen: p.gen, offset: count, query: p.query}
	p.mu.Unlock()

	return p.run(ctx, l)
}

func (p *Pager[T]) begin(offset int, query *string) (load, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if query != nil {
		p.query = *query
	}
	if offset == 0 {
		p.gen++
	} else if p.loading {
		return load{}, false
	}
	p.loading = true
	return load{gen: p.gen, offset: offset, query: p.query}, true
}

func (p *Pager[T]) run(ctx context.Context, l load) (Reload, bool) {
	page, err := p.fetch(ctx, l.query, l.offset)

	p.mu.Lock()
	defer p.mu.Unlock()
	if l.gen != p.gen {
		return Reload{}, false
	}
	p.loading = false
	if err != nil {
		return Reload{Kind: ReloadError, Category: p.category, Count: len(p.items), Err: err}, true
	}

	p.hasMore = page.HasMore
	if l.offset == 0 {
		p.items = append([]T(nil), page.Results...)
		return Reload{Kind: ReloadReplace, Category: p.category, Count: len(p.items), Added: len(page.Results)}, true
	}
	p.items = append(p.items, page.Results...)
	return Reload{Kind: ReloadAppend, Category: p.category, Count: len(p.items), Added: len(page.Results)}, true
}

// Reset drops the list and orphans any load in flight.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.items = nil
	p.hasMore = true
	p.loading = false
}

// Items returns a copy of the list.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.items...)
}

func (p *Pager[T]) At(i int) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var zero T
	if i < 0 || i >= len(p.items) {
		return zero, false
	}
	return p.items[i], true
}

func (p *Pager[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

func (p *Pager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

func (p *Pager[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Collect loads pages of query into p from offset 0 until the server reports
// no more, maxPages pages were fetched or a load fails. Every reload is
// handed to r, which may be nil.
func Collect[T any](ctx context.Context, p *Pager[T], query string, maxPages int, r Renderer) ([]T, error) {
	if r == nil {
		r = RenderFunc(func(Reload) {})
	}
	rl, ok := p.Search(query)(ctx)
	for pages := 1; ok; pages++ {
		r.Render(rl)
		if rl.Kind == ReloadError {
			return p.Items(), rl.Err
		}
		if !p.HasMore() || pages >= maxPages {
			break
		}
		rl, ok = p.ShouldLoadNextPage(ctx, p.Len()-1)
	}
	return p.Items(), nil
}

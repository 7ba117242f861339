package app

import (
	"sync"
	"time"

	"nyt_movies/internal/domain"
)

// SearchFilter holds the free-text query sent to the server and the
// publication-date lower bound applied locally.
//
// The date predicate is evaluated against whatever unfiltered list it is
// given, never against a previous result, so changing the cutoff twice does
// not compound.
type SearchFilter struct {
	mu    sync.RWMutex
	query string
	since *time.Time
}

// SetQuery replaces the query and reports whether it changed.
func (f *SearchFilter) SetQuery(q string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	changed := f.query != q
	f.query = q
	return changed
}

func (f *SearchFilter) Query() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.query
}

// SetSince sets the cutoff. Only the calendar date of t is used.
func (f *SearchFilter) SetSince(t time.Time) {
	d := dateOf(t)
	f.mu.Lock()
	f.since = &d
	f.mu.Unlock()
}

func (f *SearchFilter) ClearSince() {
	f.mu.Lock()
	f.since = nil
	f.mu.Unlock()
}

func (f *SearchFilter) Since() (time.Time, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.since == nil {
		return time.Time{}, false
	}
	return *f.since, true
}

// Apply returns the indices of reviews that pass the date predicate, in order.
// Without a cutoff every index passes. Reviews with no parsable publication
// date never pass an active cutoff.
func (f *SearchFilter) Apply(reviews []domain.Review) []int {
	since, active := f.Since()
	out := make([]int, 0, len(reviews))
	for i, r := range reviews {
		if active {
			pub, ok := r.PublishedOn()
			if !ok || pub.Before(since) {
				continue
			}
		}
		out = append(out, i)
	}
	return out
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

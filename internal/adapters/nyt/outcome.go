package nyt

import (
	"context"
	"sync/atomic"
)

// How CachedAPI answered a call.
const (
	OutcomeHit    = "hit"
	OutcomeMiss   = "miss"
	OutcomeShared = "shared"
	OutcomeBypass = "bypass"
)

type outcomeKey struct{}

// TrackOutcome returns a context under which CachedAPI records how it
// answered. Read it back with Outcome.
func TrackOutcome(ctx context.Context) context.Context {
	return context.WithValue(ctx, outcomeKey{}, new(atomic.Value))
}

// Outcome is the last outcome recorded under ctx, empty when no cached call
// was made or ctx is not tracked.
func Outcome(ctx context.Context) string {
	v, ok := ctx.Value(outcomeKey{}).(*atomic.Value)
	if !ok {
		return ""
	}
	s, _ := v.Load().(string)
	return s
}

func setOutcome(ctx context.Context, s string) {
	if v, ok := ctx.Value(outcomeKey{}).(*atomic.Value); ok {
		v.Store(s)
	}
}

// ListFor names the proxied list a request path serves, empty for other paths.
func ListFor(path string) string {
	switch path {
	case ReviewsPath:
		return "reviews"
	case CriticsPath:
		return "critics"
	}
	return ""
}

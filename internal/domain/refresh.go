package domain

import "context"

type refreshKey struct{}

// WithRefresh marks ctx as a user-requested refresh: caches between the view
// and upstream are skipped and overwritten for calls made under it.
func WithRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, refreshKey{}, true)
}

func IsRefresh(ctx context.Context) bool {
	v, _ := ctx.Value(refreshKey{}).(bool)
	return v
}

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"nyt_movies/internal/adapters/nyt"
	"nyt_movies/internal/adapters/observability"
)

func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, "timeout") }
}

// Observe writes one access-log line and the request metrics. Requests for a
// proxied list also carry the list, the offset asked for and how the page
// cache answered.
func Observe(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := nyt.TrackOutcome(r.Context())
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rc := chi.RouteContext(ctx); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			dur := time.Since(start)
			observability.ObserveHTTP(route, r.Method, status, dur)

			ev := l.Info().
				Str("route", route).
				Str("req_id", chimw.GetReqID(ctx)).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", dur).
				Str("remote", r.RemoteAddr)
			if list := nyt.ListFor(r.URL.Path); list != "" {
				cache := nyt.Outcome(ctx)
				if cache == "" {
					cache = "none"
				}
				if status < http.StatusBadRequest {
					observability.ObservePage(list, cache)
				}
				ev = ev.Str("list", list).Str("offset", r.URL.Query().Get("offset")).Str("cache", cache)
			}
			ev.Msg("http_request")
		})
	}
}

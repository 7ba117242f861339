package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"nyt_movies/internal/adapters/memcache"
	server "nyt_movies/internal/adapters/http_server"
	"nyt_movies/internal/adapters/nyt"
	"nyt_movies/internal/app"
	"nyt_movies/internal/domain"
)

// fakeUpstream mimics the NYT endpoints: 20 results per page, 50 reviews, 30 critics.
func fakeUpstream(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	page := func(total, offset int) (int, int, bool) {
		end := offset + 20
		if end > total {
			end = total
		}
		return offset, end, end < total
	}
	mux := http.NewServeMux()
	mux.HandleFunc(nyt.ReviewsPath, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Query().Get("api-key") != "upstream-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		off, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		from, to, more := page(50, off)
		out := domain.ReviewsPage{Status: "OK", HasMore: more}
		for i := from; i < to; i++ {
			out.Results = append(out.Results, domain.Review{
				DisplayTitle:    fmt.Sprintf("%s %d", r.URL.Query().Get("query"), i),
				Byline:          r.URL.Query().Get("reviewer"),
				PublicationDate: fmt.Sprintf("2023-01-%02d", 1+i%28),
			})
		}
		out.NumResults = len(out.Results)
		_ = json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc(nyt.CriticsPath, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		off, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		from, to, more := page(30, off)
		out := domain.CriticsPage{Status: "OK", HasMore: more}
		for i := from; i < to; i++ {
			out.Results = append(out.Results, domain.Critic{DisplayName: fmt.Sprintf("Critic %d", i)})
		}
		_ = json.NewEncoder(w).Encode(out)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestBrowser_ThroughBFF(t *testing.T) {
	var hits int32
	upstream := fakeUpstream(t, &hits)

	// BFF: upstream client with the real key, cached
	up, err := nyt.New(upstream.URL, "upstream-key", 100)
	if err != nil {
		t.Fatalf("upstream client: %v", err)
	}
	srv := server.New()
	srv.MountHandlers(&server.Handlers{API: nyt.NewCachedAPI(up, memcache.New(64, time.Minute), time.Minute)})
	bff := httptest.NewServer(srv.Mux())
	defer bff.Close()

	// device: no key, talks to the BFF
	cl, err := nyt.New(bff.URL, "", 100)
	if err != nil {
		t.Fatalf("bff client: %v", err)
	}
	b := app.NewBrowser(cl)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, ok := b.Start(ctx)
	if !ok || r.Kind != app.ReloadReplace || b.Count() != 20 {
		t.Fatalf("start: %+v ok=%v count=%d", r, ok, b.Count())
	}
	r, ok = b.ShouldLoadNextPage(ctx, 19)
	if !ok || r.Kind != app.ReloadAppend || b.Count() != 40 {
		t.Fatalf("next page: %+v ok=%v count=%d", r, ok, b.Count())
	}

	r, _ = b.SearchChanged(ctx, "alien")
	if r.Kind != app.ReloadReplace || b.Reviews()[0].DisplayTitle != "alien 0" {
		t.Fatalf("search: %+v first=%q", r, b.Reviews()[0].DisplayTitle)
	}

	if r := b.FilterChanged(time.Date(2023, 1, 12, 0, 0, 0, 0, time.UTC)); r.Kind != app.ReloadReplace || r.Count != 9 {
		t.Fatalf("filter: %+v", r)
	}

	b.SelectCategory(app.CategoryCritics)
	if r, ok := b.Refresh(ctx); !ok || r.Category != app.CategoryCritics || b.Count() != 20 {
		t.Fatalf("critics: %+v ok=%v", r, ok)
	}

	cr, err := b.OpenCritic(2)
	if err != nil {
		t.Fatalf("open critic: %v", err)
	}
	if _, ok := cr.Setup(ctx); !ok || cr.Reviews()[0].Byline != "Critic 2" {
		t.Fatalf("critic reviews: %+v", cr.Reviews())
	}

	// an ordinary reload of the critics list is served from the api server cache
	before := atomic.LoadInt32(&hits)
	if _, ok := b.Start(ctx); !ok {
		t.Fatalf("reload failed")
	}
	if after := atomic.LoadInt32(&hits); after != before {
		t.Fatalf("expected cached reload, upstream hits %d -> %d", before, after)
	}

	// an explicit refresh goes all the way upstream
	if _, ok := b.Refresh(ctx); !ok {
		t.Fatalf("refresh failed")
	}
	if after := atomic.LoadInt32(&hits); after != before+1 {
		t.Fatalf("expected refresh to reach upstream once, hits %d -> %d", before, after)
	}
}

func TestBrowser_RateLimitThroughBFF(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	up, _ := nyt.New(upstream.URL, "k", 100)
	srv := server.New()
	srv.MountHandlers(&server.Handlers{API: up})
	bff := httptest.NewServer(srv.Mux())
	defer bff.Close()

	cl, _ := nyt.New(bff.URL, "", 100)
	b := app.NewBrowser(cl)
	r, ok := b.Start(context.Background())
	if !ok || r.Kind != app.ReloadError || r.Message() != domain.RateLimitMessage {
		t.Fatalf("expected rate limit reload, got %+v (%q)", r, r.Message())
	}
}

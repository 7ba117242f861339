package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	server "nyt_movies/internal/adapters/http_server"
	"nyt_movies/internal/adapters/memcache"
	"nyt_movies/internal/adapters/observability"
	"nyt_movies/internal/adapters/nyt"
	"nyt_movies/internal/domain"
)

// ---- fakes ----

type fakeAPI struct {
	lastReviews domain.ReviewQuery
	lastCritics domain.CriticQuery
	critics     int
	err         error
}

func (f *fakeAPI) FetchReviews(ctx context.Context, q domain.ReviewQuery) (domain.ReviewsPage, error) {
	f.lastReviews = q
	if f.err != nil {
		return domain.ReviewsPage{}, f.err
	}
	return domain.ReviewsPage{Status: "OK", HasMore: true, NumResults: 1, Results: []domain.Review{{DisplayTitle: "Tár"}}}, nil
}

func (f *fakeAPI) FetchCritics(ctx context.Context, q domain.CriticQuery) (domain.CriticsPage, error) {
	f.lastCritics = q
	f.critics++
	if f.err != nil {
		return domain.CriticsPage{}, f.err
	}
	return domain.CriticsPage{Status: "OK", Results: []domain.Critic{{DisplayName: "A. O. Scott"}}}, nil
}

func newServer(api domain.MovieAPI) http.Handler {
	srv := server.New()
	srv.MountHandlers(&server.Handlers{API: api})
	return srv.Mux()
}

// ---- tests ----

func TestReviews_ProxiesQueryAndETag(t *testing.T) {
	api := &fakeAPI{}
	h := newServer(api)

	req := httptest.NewRequest(http.MethodGet, nyt.ReviewsPath+"?query=tar&reviewer=Manohla+Dargis&offset=20&api-key=ignored", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rr.Code, rr.Body.String())
	}
	want := domain.ReviewQuery{Query: "tar", Reviewer: "Manohla Dargis", Offset: 20}
	if api.lastReviews != want {
		t.Fatalf("upstream query %+v want %+v", api.lastReviews, want)
	}
	var page domain.ReviewsPage
	if err := json.NewDecoder(rr.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !page.HasMore || page.Results[0].DisplayTitle != "Tár" {
		t.Fatalf("unexpected body: %+v", page)
	}

	etag := rr.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag")
	}
	req = httptest.NewRequest(http.MethodGet, nyt.ReviewsPath+"?query=tar&reviewer=Manohla+Dargis&offset=20", nil)
	req.Header.Set("If-None-Match", etag)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rr.Code)
	}
}

func TestCritics_DefaultOffset(t *testing.T) {
	api := &fakeAPI{}
	rr := httptest.NewRecorder()
	newServer(api).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, nyt.CriticsPath, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if api.lastCritics != (domain.CriticQuery{}) {
		t.Fatalf("unexpected upstream query %+v", api.lastCritics)
	}
}

func TestBadOffset(t *testing.T) {
	for _, off := range []string{"abc", "-1"} {
		rr := httptest.NewRecorder()
		newServer(&fakeAPI{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, nyt.ReviewsPath+"?offset="+off, nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("offset %q: expected 400, got %d", off, rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
			t.Fatalf("unexpected content type %q", ct)
		}
	}
}

func TestUpstreamErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrRateLimited, http.StatusTooManyRequests},
		{&domain.StatusError{Code: 500}, http.StatusBadGateway},
		{&domain.DecodeError{Err: context.Canceled}, http.StatusBadGateway},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		newServer(&fakeAPI{err: c.err}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, nyt.CriticsPath, nil))
		if rr.Code != c.code {
			t.Fatalf("%v: expected %d, got %d", c.err, c.code, rr.Code)
		}
	}
}

func TestHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	newServer(&fakeAPI{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("unexpected healthz: %d %q", rr.Code, rr.Body.String())
	}
}

func TestNoCacheRequestRefetches(t *testing.T) {
	api := &fakeAPI{}
	h := newServer(nyt.NewCachedAPI(api, memcache.New(8, time.Minute), time.Minute))

	get := func(noCache bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, nyt.CriticsPath+"?offset=0", nil)
		if noCache {
			req.Header.Set("Cache-Control", "no-cache")
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	if rr := get(false); rr.Header().Get("X-Cache") != nyt.OutcomeMiss {
		t.Fatalf("first read: X-Cache %q", rr.Header().Get("X-Cache"))
	}
	if rr := get(false); rr.Header().Get("X-Cache") != nyt.OutcomeHit || api.critics != 1 {
		t.Fatalf("second read: X-Cache %q after %d upstream calls", rr.Header().Get("X-Cache"), api.critics)
	}
	if rr := get(true); rr.Header().Get("X-Cache") != nyt.OutcomeBypass || api.critics != 2 {
		t.Fatalf("no-cache read: X-Cache %q after %d upstream calls", rr.Header().Get("X-Cache"), api.critics)
	}
}

func TestRateLimitIsCounted(t *testing.T) {
	reg := observability.InitRegistry()
	rr := httptest.NewRecorder()
	newServer(&fakeAPI{err: domain.ErrRateLimited}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, nyt.ReviewsPath, nil))
	if rr.Code != http.StatusTooManyRequests || rr.Header().Get("Retry-After") != "60" {
		t.Fatalf("unexpected response %d %v", rr.Code, rr.Header())
	}

	mr := httptest.NewRecorder()
	observability.MetricsHandler(reg).ServeHTTP(mr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(mr.Body.String(), `nytmovies_upstream_rate_limited_total{list="reviews"}`) {
		t.Fatalf("rate limit not counted:\n%s", mr.Body.String())
	}
}

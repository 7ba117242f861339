package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nyt_movies/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	if !strings.Contains(out, "nytmovies_http_requests_total") {
		t.Fatalf("expected nytmovies_http_requests_total in output")
	}
}

func TestMetrics_DomainCollectors(t *testing.T) {
	reg := observability.InitRegistry()
	observability.ObservePage("reviews", "hit")
	observability.ObserveUpstream("critics", 429, time.Millisecond)
	observability.ObserveRateLimited("critics")
	observability.ObserveCache("lru", "miss")

	rr := httptest.NewRecorder()
	observability.MetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	out := rr.Body.String()
	for _, want := range []string{
		`nytmovies_pages_served_total{cache="hit",list="reviews"}`,
		`nytmovies_upstream_requests_total{list="critics",status="429"}`,
		`nytmovies_upstream_rate_limited_total{list="critics"}`,
		`nytmovies_cache_events_total{backend="lru",event="miss"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in\n%s", want, out)
		}
	}
}

package observability

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "nytmovies"

// Label values for list are reviews, critics or other.
var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Requests served by the api server."},
		[]string{"route", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "Request duration in the api server.", Buckets: prometheus.DefBuckets},
		[]string{"route"},
	)
	pagesServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "pages_served_total", Help: "List pages answered by the api server, by cache outcome."},
		[]string{"list", "cache"},
	)
	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "upstream_requests_total", Help: "Calls to the NYT API."},
		[]string{"list", "status"},
	)
	upstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "upstream_request_duration_seconds", Help: "NYT API call duration.", Buckets: prometheus.DefBuckets},
		[]string{"list"},
	)
	upstreamRateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "upstream_rate_limited_total", Help: "List requests answered 429 because the NYT API rate-limited us."},
		[]string{"list"},
	)
	cacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Page cache operations by backend."},
		[]string{"backend", "event"}, // event: hit|miss|set|del
	)
)

// InitRegistry returns a registry holding the package collectors.
// Each call builds a fresh registry.
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(httpRequests, httpLatency, pagesServed, upstreamRequests, upstreamLatency, upstreamRateLimited, cacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Serve starts a dedicated metrics listener on addr. Empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(route).Observe(dur.Seconds())
}

// ObservePage counts one list page the api server answered. cache is the
// CachedAPI outcome, "none" when no cache sat in front of upstream.
func ObservePage(list, cache string) {
	pagesServed.WithLabelValues(listLabel(list), cache).Inc()
}

// ObserveUpstream records one NYT API call; status 0 means no response.
func ObserveUpstream(list string, status int, dur time.Duration) {
	upstreamRequests.WithLabelValues(listLabel(list), strconv.Itoa(status)).Inc()
	upstreamLatency.WithLabelValues(listLabel(list)).Observe(dur.Seconds())
}

func ObserveRateLimited(list string) {
	upstreamRateLimited.WithLabelValues(listLabel(list)).Inc()
}

func ObserveCache(backend, event string) {
	cacheEvents.WithLabelValues(backend, event).Inc()
}

// LabelErr is a low-cardinality label for an outbound failure.
func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}

func listLabel(list string) string {
	if list == "" {
		return "other"
	}
	return list
}

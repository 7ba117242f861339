// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"nyt_movies/internal/adapters/nyt"
	"nyt_movies/internal/adapters/observability"
	"nyt_movies/internal/domain"
)

// Handlers proxies the two list endpoints, keeping the upstream key server-side.
type Handlers struct{ API domain.MovieAPI }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get(nyt.ReviewsPath, h.listReviews)
	s.mux.Get(nyt.CriticsPath, h.listCritics)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeUpstreamError maps a client error to the status the api server answers with.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrRateLimited) {
		observability.ObserveRateLimited(nyt.ListFor(r.URL.Path))
		w.Header().Set("Retry-After", "60")
		writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", domain.RateLimitMessage)
		return
	}
	log.Warn().Err(err).Msg("upstream call failed")
	writeProblem(w, http.StatusBadGateway, "Bad Gateway", domain.UserMessage(err))
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if o := nyt.Outcome(r.Context()); o != "" {
		w.Header().Set("X-Cache", o)
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

// requestContext marks the call as a refresh when the client asked to skip caches.
func requestContext(r *http.Request) context.Context {
	if strings.Contains(r.Header.Get("Cache-Control"), "no-cache") {
		return domain.WithRefresh(r.Context())
	}
	return r.Context()
}

// parseOffset reads ?offset=, defaulting to 0.
func parseOffset(r *http.Request) (int, bool) {
	s := r.URL.Query().Get("offset")
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	offset, ok := parseOffset(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid offset", "offset must be a non-negative integer")
		return
	}
	q := domain.ReviewQuery{
		Query:    r.URL.Query().Get("query"),
		Reviewer: r.URL.Query().Get("reviewer"),
		Offset:   offset,
	}
	out, err := h.API.FetchReviews(requestContext(r), q)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) listCritics(w http.ResponseWriter, r *http.Request) {
	offset, ok := parseOffset(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid offset", "offset must be a non-negative integer")
		return
	}
	out, err := h.API.FetchCritics(requestContext(r), domain.CriticQuery{Query: r.URL.Query().Get("query"), Offset: offset})
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, out)
}

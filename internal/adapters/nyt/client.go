// internal/adapters/nyt/client.go
package nyt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"nyt_movies/internal/adapters/observability"
	"nyt_movies/internal/domain"
)

const (
	DefaultBase = "https://api.nytimes.com"
	ReviewsPath = "/svc/movies/v2/reviews/search.json"
	CriticsPath = "/svc/movies/v2/critics/all.json"
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

// New builds a client for base. An empty key is allowed so the client can
// target a proxy that injects its own key.
func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		base = DefaultBase
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base %q", domain.ErrMalformedURL, base)
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

func (c *Client) FetchReviews(ctx context.Context, q domain.ReviewQuery) (domain.ReviewsPage, error) {
	var out domain.ReviewsPage
	err := c.get(ctx, ReviewsPath, queryItems(q.Offset, q.Query, q.Reviewer), &out)
	return out, err
}

func (c *Client) FetchCritics(ctx context.Context, q domain.CriticQuery) (domain.CriticsPage, error) {
	var out domain.CriticsPage
	err := c.get(ctx, CriticsPath, queryItems(q.Offset, q.Query, ""), &out)
	return out, err
}

// ---- Internals ----

func queryItems(offset int, search, reviewer string) url.Values {
	v := url.Values{}
	if search != "" {
		v.Set("query", search)
	}
	if reviewer != "" {
		v.Set("reviewer", reviewer)
	}
	v.Set("offset", strconv.Itoa(offset))
	return v
}

func (c *Client) buildURL(path string, q url.Values) (string, error) {
	u, err := url.Parse(c.base + path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedURL, err)
	}
	// keyless clients talk to the api server, which adds its own key
	if c.key != "" {
		q.Set("api-key", c.key)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// get performs one rate-limited GET and decodes the JSON body into out.
// Every failure comes back typed; see domain/errors.go.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u, err := c.buildURL(path, q)
	if err != nil {
		return err
	}
	if err := c.rl.Wait(ctx); err != nil {
		return &domain.TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedURL, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "nyt-movies/1.0")
	req.Header.Set("X-Request-Id", reqID)
	if domain.IsRefresh(ctx) {
		req.Header.Set("Cache-Control", "no-cache")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveUpstream(ListFor(path), 0, time.Since(start))
		log.Debug().Str("path", path).Str("req_id", reqID).Str("err_type", observability.LabelErr(err)).Err(err).Msg("nyt request failed")
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveUpstream(ListFor(path), resp.StatusCode, time.Since(start))
	log.Debug().
		Str("path", path).
		Str("req_id", reqID).
		Int("status", resp.StatusCode).
		Int("offset", atoiOr(q.Get("offset"), 0)).
		Dur("duration", time.Since(start)).
		Msg("nyt request")

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.ErrRateLimited

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return &domain.DecodeError{Err: err}
		}
		return nil

	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
}

func atoiOr(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "nyt_movies/internal/adapters/http_server"
	"nyt_movies/internal/adapters/memcache"
	"nyt_movies/internal/adapters/nyt"
	"nyt_movies/internal/adapters/observability"
	redisad "nyt_movies/internal/adapters/redis"
	"nyt_movies/internal/domain"
	"nyt_movies/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// deps
	client, err := nyt.New(cfg.NYTBase, cfg.NYTKey, cfg.NYTRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize NYT client")
	}
	cache := newCache(ctx, cfg)
	api := nyt.NewCachedAPI(client, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{API: api})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// newCache prefers Redis when REDIS_ADDR is set and reachable.
func newCache(ctx context.Context, cfg shared.Config) domain.Cache {
	if cfg.RedisAddr == "" {
		log.Info().Int("size", cfg.CacheSize).Dur("ttl", cfg.CacheTTL).Msg("using in-process cache")
		return memcache.New(cfg.CacheSize, cfg.CacheTTL)
	}
	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, falling back to in-process cache")
		_ = rc.Close()
		return memcache.New(cfg.CacheSize, cfg.CacheTTL)
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache ok")
	return rc
}

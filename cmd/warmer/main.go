package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"nyt_movies/internal/adapters/nyt"
	"nyt_movies/internal/adapters/observability"
	redisad "nyt_movies/internal/adapters/redis"
	"nyt_movies/internal/app"
	"nyt_movies/internal/shared"
)

// maxCriticPages bounds how much of the critics list is walked.
const maxCriticPages = 5

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.NYTBase).
		Int("workers", cfg.WarmWorkers).
		Msg("warmer starting")

	if cfg.RedisAddr == "" {
		log.Fatal().Msg("REDIS_ADDR is required: an in-process cache would die with this job")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}

	client, err := nyt.New(cfg.NYTBase, cfg.NYTKey, cfg.NYTRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize NYT client")
	}
	warm := app.NewWarmService(nyt.NewCachedAPI(client, cache, cfg.CacheTTL))

	critics, err := warm.Critics(ctx, maxCriticPages)
	if err != nil {
		log.Warn().Err(err).Int("critics", len(critics)).Msg("critics list incomplete")
	}

	sem := semaphore.NewWeighted(int64(cfg.WarmWorkers))
	var wg sync.WaitGroup
	start := time.Now()

	for _, c := range critics {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("warm interrupted")
			break
		}

		c := c // per-iteration copy (go 1.21 loop semantics)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			n, err := warm.WarmCritic(ctx, c)
			if err != nil {
				log.Warn().Str("critic", c.DisplayName).Err(err).Msg("warm failed")
				return
			}
			log.Info().Str("critic", c.DisplayName).Int("reviews", n).Msg("warm ok")
		}()
	}

	wg.Wait()
	log.Info().Int("critics", len(critics)).Dur("took", time.Since(start)).Msg("warm completed")
}

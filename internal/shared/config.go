package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	NYTBase     string
	NYTKey      string
	NYTRPS      int
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	CacheSize   int
	WarmWorkers int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		NYTBase:     env("NYT_BASE_URL", "https://api.nytimes.com"),
		NYTKey:      env("NYT_API_KEY", ""),
		NYTRPS:      atoi("NYT_RPS", 5),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		CacheSize:   atoi("CACHE_SIZE", 512),
		WarmWorkers: atoi("WARM_WORKERS", 4),
	}
	if c.WarmWorkers < 1 {
		log.Warn().Int("workers", c.WarmWorkers).Msg("WARM_WORKERS below 1, using 1")
		c.WarmWorkers = 1
	}
	if c.NYTKey == "" {
		log.Warn().Msg("NYT_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

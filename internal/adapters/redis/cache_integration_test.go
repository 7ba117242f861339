//go:build integration

package redisad_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	redisad "nyt_movies/internal/adapters/redis"
	"nyt_movies/internal/domain"
)

func TestCache_RealRedis(t *testing.T) {
	// Start isolated Redis; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7.2-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	addr := fmt.Sprintf("127.0.0.1:%s", resource.GetPort("6379/tcp"))
	c := redisad.New(addr, "", 0)
	t.Cleanup(func() { _ = c.Close() })

	if err := pool.Retry(func() error { return c.Ping(context.Background()) }); err != nil {
		t.Fatalf("connect redis: %v", err)
	}

	ctx := context.Background()
	in := domain.ReviewsPage{Status: "OK", HasMore: true, Results: []domain.Review{{DisplayTitle: "Aftersun", PublicationDate: "2022-10-20"}}}
	if err := c.Set(ctx, "reviews:0:aftersun:", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out domain.ReviewsPage
	ok, err := c.Get(ctx, "reviews:0:aftersun:", &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if out.Results[0].DisplayTitle != "Aftersun" {
		t.Fatalf("unexpected page: %+v", out)
	}
}

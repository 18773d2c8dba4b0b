package http

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ResponseCache stores rendered GET responses by request key.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration)
}

type redisCache struct {
	client *redis.Client
}

// NewRedisCache shares cached responses between instances. Redis errors count as misses.
func NewRedisCache(client *redis.Client) ResponseCache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

func (c *redisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	_ = c.client.Set(ctx, key, body, ttl).Err()
}

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache keeps responses in process.
func NewMemoryCache(ttl time.Duration) ResponseCache {
	cleanup := 2 * ttl
	if cleanup < time.Second {
		cleanup = time.Second
	}
	return &memoryCache{store: gocache.New(ttl, cleanup)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	cached, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	body, ok := cached.([]byte)
	return body, ok
}

func (c *memoryCache) Set(_ context.Context, key string, body []byte, ttl time.Duration) {
	stored := make([]byte, len(body))
	copy(stored, body)
	c.store.Set(key, stored, ttl)
}

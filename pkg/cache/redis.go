package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spencer-p/goldenhour/pkg/log"
)

const keyPrefix = "goldenhour:"

// Redis is a Cache shared between processes. Redis failures are treated as
// misses.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the Redis server at addr.
func NewRedis(addr string, ttl time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Ping checks the connection.
func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	} else if err != nil {
		log.Debugf("redis get %q: %v", key, err)
		return nil, false
	}
	return val, true
}

func (c *Redis) Set(ctx context.Context, key string, val []byte) {
	if err := c.client.Set(ctx, keyPrefix+key, val, c.ttl).Err(); err != nil {
		log.Debugf("redis set %q: %v", key, err)
	}
}

// Close releases the connection pool.
func (c *Redis) Close() error {
	return c.client.Close()
}

package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const shelfLifePrefix = "shelf_life:"

// RedisShelfLifeCache keeps resolved shelf lives in Redis.
type RedisShelfLifeCache struct {
	client *redis.Client
}

func NewRedisShelfLifeCache(client *redis.Client) *RedisShelfLifeCache {
	return &RedisShelfLifeCache{client: client}
}

// NewRedisClient returns nil when addr is empty.
func NewRedisClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}

func (c *RedisShelfLifeCache) Get(ctx context.Context, key string) (int, bool, error) {
	raw, err := c.client.Get(ctx, shelfLifePrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, err
	}
	return days, true, nil
}

func (c *RedisShelfLifeCache) Set(ctx context.Context, key string, days int, ttl time.Duration) error {
	return c.client.Set(ctx, shelfLifePrefix+key, strconv.Itoa(days), ttl).Err()
}

package scores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a thin Redis wrapper for leaderboard reads.
type Cache struct {
	client *redis.Client
}

func NewCache(addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Cache{client: client}, nil
}

// GetJSON unmarshals the cached value into dest. The bool reports whether the
// key existed.
func (c *Cache) GetJSON(key string, dest interface{}) (bool, error) {
	val, err := c.client.Get(context.Background(), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("unmarshal cached value: %w", err)
	}
	return true, nil
}

// SetJSON stores a JSON-encoded value with an expiration.
func (c *Cache) SetJSON(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value: %w", err)
	}
	return c.client.Set(context.Background(), key, data, expiration).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

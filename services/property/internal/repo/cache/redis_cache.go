package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cusceda/services/property/internal/entity"

	"github.com/redis/go-redis/v9"
)

const DetailTTL = 15 * time.Minute

func detailKey(id string) string {
	return fmt.Sprintf("property:%s", id)
}

// RedisDetailCache keeps serialised property detail responses.
type RedisDetailCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisDetailCache(client redis.Cmdable) *RedisDetailCache {
	return &RedisDetailCache{client: client, ttl: DetailTTL}
}

// Get reports a miss as (nil, nil).
func (c *RedisDetailCache) Get(ctx context.Context, id string) (*entity.Property, error) {
	data, err := c.client.Get(ctx, detailKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read property cache: %w", err)
	}

	var property entity.Property
	if err := json.Unmarshal(data, &property); err != nil {
		return nil, fmt.Errorf("failed to decode cached property: %w", err)
	}
	return &property, nil
}

func (c *RedisDetailCache) Set(ctx context.Context, property *entity.Property) error {
	data, err := json.Marshal(property)
	if err != nil {
		return fmt.Errorf("failed to encode property: %w", err)
	}
	if err := c.client.Set(ctx, detailKey(property.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache property: %w", err)
	}
	return nil
}

func (c *RedisDetailCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, detailKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate property cache: %w", err)
	}
	return nil
}

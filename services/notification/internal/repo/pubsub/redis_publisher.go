package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"cusceda/services/notification/internal/entity"

	"github.com/redis/go-redis/v9"
)

func Channel(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

// RedisPublisher fans newly stored notifications out to live subscribers.
type RedisPublisher struct {
	client redis.Cmdable
}

func NewRedisPublisher(client redis.Cmdable) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, n entity.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	channel := Channel(n.UserID)
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to channel %s: %w", channel, err)
	}
	return nil
}

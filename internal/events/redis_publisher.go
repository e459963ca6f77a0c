package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisherClient is the part of *redis.Client used to fan events out.
type RedisPublisherClient interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisPublisher forwards events to a Redis pub/sub channel as JSON.
type RedisPublisher struct {
	client  RedisPublisherClient
	channel string
}

// NewRedisPublisher builds a publisher for channel.
func NewRedisPublisher(client RedisPublisherClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Channel returns the target channel name.
func (p *RedisPublisher) Channel() string {
	return p.channel
}

// Handle is an EventHandler publishing the event.
func (p *RedisPublisher) Handle(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}
	return nil
}

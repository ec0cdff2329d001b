package push

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"skillswap-backend/internal/logger"
)

// RedisPublisher publishes conversation events on the channel
// "conversation:{key}" via Redis pub/sub. The socket gateway subscribes with
// PSUBSCRIBE conversation:* and routes to connected clients.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(addr, password string, db int) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisPublisher{client: client}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	channel := "conversation:" + event.ConversationKey
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventID, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// NopPublisher is used when no Redis address is configured. Events are logged
// at debug level and dropped.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, event Event) error {
	logger.Debug("Push publishing disabled, dropping event",
		"event_id", event.EventID, "type", event.Type, "conversation_key", event.ConversationKey)
	return nil
}

func (NopPublisher) Close() error { return nil }

package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	intentKeyPrefix = "pay:intent:"   // pay:intent:{idempotency_key}
	intentTTL       = 24 * time.Hour // matches the processor's idempotency window
)

// CachedIntent is a created intent together with the parameters it was
// created for.
type CachedIntent struct {
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	ClientSecret string `json:"client_secret"`
}

// IntentCache remembers created intents by idempotency key.
type IntentCache interface {
	Get(ctx context.Context, key string) (*CachedIntent, bool, error)
	Set(ctx context.Context, key string, intent CachedIntent) error
}

// RedisCache is an IntentCache backed by Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) (*CachedIntent, bool, error) {
	data, err := r.client.Get(ctx, intentKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached intent: %w", err)
	}

	var intent CachedIntent
	if err := json.Unmarshal([]byte(data), &intent); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached intent: %w", err)
	}
	return &intent, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, intent CachedIntent) error {
	data, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("failed to marshal intent: %w", err)
	}
	if err := r.client.Set(ctx, intentKeyPrefix+key, data, intentTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache intent: %w", err)
	}
	return nil
}

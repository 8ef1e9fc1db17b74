package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a KeyValue backed by Redis. Values are stored as JSON
// strings without expiry; Redis is treated as the persistent store here,
// not a cache.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a RedisStore on the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get implements KeyValue.
func (s *RedisStore) Get(ctx context.Context, key string, dest any) error {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrKeyNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Set implements KeyValue.
func (s *RedisStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, 0).Err()
}

// Delete implements KeyValue.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

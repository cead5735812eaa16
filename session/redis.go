package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage is a Redis-backed Storage. It lets a session survive process
// restarts the way sessionStorage survives a page reload; the prefix
// namespaces one client instance's keys from another's.
type RedisStorage struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStorage creates a [RedisStorage] backed by the given Redis client.
// prefix sets the Redis key namespace for this client instance.
func NewRedisStorage(client redis.UniversalClient, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "cafe"
	}
	return &RedisStorage{
		redis:  client,
		prefix: prefix,
	}
}

func (s *RedisStorage) key(k string) string {
	return s.prefix + ":" + k
}

// Get retrieves one session field.
//
//	Performance: 1 Redis GET.
func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := s.redis.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return v, nil
}

// Set persists one session field. Fields carry no Redis TTL; expiry is the
// store's concern, not the storage's.
func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.redis.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Delete removes session fields. Absent keys are ignored.
func (s *RedisStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, 0, len(keys))
	for _, k := range keys {
		namespaced = append(namespaced, s.key(k))
	}
	if err := s.redis.Del(ctx, namespaced...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

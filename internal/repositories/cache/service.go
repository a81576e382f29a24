package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// CacheService stores JSON values in Redis. A zero TTL keeps keys until
// they are deleted.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// SetIfAbsent stores value only when key is free and reports whether it did.
func (s *CacheService) SetIfAbsent(ctx context.Context, key string, value interface{}) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to marshal cache value: %w", err)
	}
	ok, err := s.client.SetNX(ctx, key, data, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set cache value: %w", err)
	}
	return ok, nil
}

// Get decodes the value at key into dest.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	return decode(data, err, dest)
}

// Take atomically reads and deletes key.
func (s *CacheService) Take(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.GetDel(ctx, key).Bytes()
	return decode(data, err, dest)
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}

func decode(data []byte, err error, dest interface{}) error {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return nil
}

package datastore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBlobStore keeps blobs as plain Redis strings under a key prefix
type RedisBlobStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisBlobStore.
type RedisOption func(*RedisBlobStore)

// WithPrefix sets the key prefix. Default is "palette".
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisBlobStore) {
		s.prefix = prefix
	}
}

// WithTTL expires blobs after ttl. Default 0 keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisBlobStore) {
		s.ttl = ttl
	}
}

// NewRedisBlobStore creates a Redis-backed blob store.
//
// Example:
//
//	store := NewRedisBlobStore(
//	    redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
//	    WithPrefix("palettes"),
//	)
func NewRedisBlobStore(client *redis.Client, opts ...RedisOption) *RedisBlobStore {
	store := &RedisBlobStore{
		client: client,
		prefix: "palette",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *RedisBlobStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

func (s *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (s *RedisBlobStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisBlobStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// Package redisstore implements storage.Storage with Redis string keys.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"todo/internal/storage"
)

// DefaultPrefix namespaces slot keys.
const DefaultPrefix = "todo:"

// Store maps each slot to the Redis key <prefix><slot>.
type Store struct {
	client *redis.Client
	prefix string
	owned  bool
}

// Option configures the store.
type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New wraps an existing client. Close does not close a client passed in here.
func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dial connects to addr and checks the connection with PING.
func Dial(ctx context.Context, addr, password string, db int, opts ...Option) (*Store, error) {
	if addr == "" {
		return nil, errors.New("redisstore: address not set")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redisstore: connect %s: %w", addr, err)
	}
	s := New(client, opts...)
	s.owned = true
	return s, nil
}

// Key returns the Redis key used for slot.
func (s *Store) Key(slot string) string {
	return s.prefix + slot
}

// Get implements storage.Storage.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: get %s: %w", key, err)
	}
	return value, nil
}

// Set implements storage.Storage. SET replaces the value in one command.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redisstore: set %s: %w", key, err)
	}
	return nil
}

// Close implements storage.Storage.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

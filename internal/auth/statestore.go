// internal/auth/statestore.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrStateUnknown = errors.New("OAUTH_STATE_UNKNOWN")

// StateStore holds short-lived OAuth state tokens. Each token is valid for a
// single exchange within the configured TTL.
type StateStore interface {
	Put(ctx context.Context, state, provider string) error
	Consume(ctx context.Context, state string) (string, error)
}

// RedisStateStore keeps state tokens in Redis with a server-side expiry so
// abandoned flows clean themselves up.
type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, ttl: ttl}
}

func (s *RedisStateStore) key(state string) string {
	return fmt.Sprintf("oauth:state:%s", state)
}

func (s *RedisStateStore) Put(ctx context.Context, state, provider string) error {
	return s.client.Set(ctx, s.key(state), provider, s.ttl).Err()
}

// Consume fetches and deletes the state token atomically. A token can be
// consumed at most once.
func (s *RedisStateStore) Consume(ctx context.Context, state string) (string, error) {
	provider, err := s.client.GetDel(ctx, s.key(state)).Result()
	if err == redis.Nil {
		return "", ErrStateUnknown
	}
	if err != nil {
		return "", fmt.Errorf("consume oauth state: %w", err)
	}
	return provider, nil
}

// Package redis provides Redis-backed adapters for the voluntree UI client.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voluntree/voluntree-ui/internal/token"
)

// TokenStorage is a Redis-backed durable slot for the raw session token.
// Values carry a TTL so an abandoned slot ages out with the token itself.
type TokenStorage struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// DefaultTTL matches the mirrored-cookie lifetime of seven days.
const DefaultTTL = 7 * 24 * time.Hour

// NewTokenStorage creates a Redis-backed token storage.
func NewTokenStorage(client redis.UniversalClient) *TokenStorage {
	return &TokenStorage{client: client, prefix: "client:", ttl: DefaultTTL}
}

// NewTokenStorageWithPrefix creates a token storage with a custom key prefix.
func NewTokenStorageWithPrefix(client redis.UniversalClient, prefix string) *TokenStorage {
	return &TokenStorage{client: client, prefix: prefix, ttl: DefaultTTL}
}

func (s *TokenStorage) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", token.ErrNotFound
	}

	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", token.ErrNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}

	return value, nil
}

func (s *TokenStorage) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("storage key cannot be empty")
	}

	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

func (s *TokenStorage) Del(ctx context.Context, key string) error {
	if key == "" {
		return nil // Nothing to delete
	}

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	return nil
}

// Interface conformance.
var _ token.Storage = (*TokenStorage)(nil)

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/workhive/workhive/internal/model"
)

const (
	// sessionPrefix is the Redis key prefix for session records.
	sessionPrefix = "session:"
)

// ErrSessionNotFound indicates no session exists for the given token.
var ErrSessionNotFound = errors.New("session not found")

// GetSession retrieves a session by token hash.
func (c *Cache) GetSession(ctx context.Context, tokenHash string) (*model.Session, error) {
	key := sessionPrefix + tokenHash

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		// Corrupted entry - treat as expired
		return nil, ErrSessionNotFound
	}

	return &s, nil
}

// SetSession stores a session under the token hash with the given TTL.
func (c *Cache) SetSession(ctx context.Context, tokenHash string, s *model.Session, ttl time.Duration) error {
	key := sessionPrefix + tokenHash

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// DeleteSession removes a session. Used at sign-out.
func (c *Cache) DeleteSession(ctx context.Context, tokenHash string) error {
	key := sessionPrefix + tokenHash
	return c.client.Del(ctx, key).Err()
}

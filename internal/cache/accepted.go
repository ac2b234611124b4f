package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// acceptedCheckPrefix is the Redis key prefix for acceptance existence checks.
	acceptedCheckPrefix = "accepted:check:"
	// acceptedCheckTTL bounds staleness of the cached check. The check
	// is advisory only; the unique constraint in Postgres is the authority.
	acceptedCheckTTL = 2 * time.Minute
)

// ErrCacheMiss indicates the requested entry is not cached.
var ErrCacheMiss = errors.New("cache miss")

// acceptedCheckKey derives the cache key for a (jobID, email) pair.
// The email is hashed so raw addresses never appear in Redis keys.
func acceptedCheckKey(jobID, email string) string {
	sum := sha256.Sum256([]byte(email))
	return acceptedCheckPrefix + jobID + ":" + hex.EncodeToString(sum[:8])
}

// GetAcceptedCheck returns the cached acceptance-exists flag for a
// (jobID, email) pair. Returns ErrCacheMiss when not cached.
func (c *Cache) GetAcceptedCheck(ctx context.Context, jobID, email string) (bool, error) {
	val, err := c.client.Get(ctx, acceptedCheckKey(jobID, email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, ErrCacheMiss
		}
		return false, err
	}
	return val == "1", nil
}

// SetAcceptedCheck caches the acceptance-exists flag for a (jobID, email) pair.
func (c *Cache) SetAcceptedCheck(ctx context.Context, jobID, email string, accepted bool) error {
	val := "0"
	if accepted {
		val = "1"
	}
	return c.client.Set(ctx, acceptedCheckKey(jobID, email), val, acceptedCheckTTL).Err()
}

// DeleteAcceptedCheck invalidates the cached flag after an accept or removal.
func (c *Cache) DeleteAcceptedCheck(ctx context.Context, jobID, email string) error {
	return c.client.Del(ctx, acceptedCheckKey(jobID, email)).Err()
}

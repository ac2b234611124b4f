package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionLimitPrefix = "ratelimit:session:"
	ipLimitPrefix      = "ratelimit:ip:"

	sessionLimitTTL = 2 * time.Minute
	ipLimitTTL      = 10 * time.Second
)

// RateLimitResult reports the outcome of a token bucket check. ResetAt and
// RetryAfter feed the X-RateLimit-Reset and Retry-After response headers.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// tokenBucket refills and consumes in one atomic round trip. State lives in
// a Redis hash (tokens, last_update) per limited key.
var tokenBucket = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])
	local burst = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_update')
	local tokens = tonumber(state[1]) or burst
	local last = tonumber(state[2]) or now

	tokens = math.min(burst, tokens + (now - last) * rate)

	local allowed = 0
	local retry_after = 0
	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after = math.ceil((1 - tokens) / rate)
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_update', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// CheckAPIRateLimit applies the per-session budget for authenticated
// requests. ratePerMinute of zero means unlimited.
func (c *Cache) CheckAPIRateLimit(ctx context.Context, sessionKey string, ratePerMinute, burst int) (*RateLimitResult, error) {
	if ratePerMinute == 0 {
		return allowAll(burst), nil
	}
	return c.consumeToken(ctx, sessionLimitPrefix+sessionKey, float64(ratePerMinute)/60.0, burst, sessionLimitTTL)
}

// CheckIPRateLimit applies the per-address budget for anonymous requests.
// Addresses are hashed before use as Redis keys.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*RateLimitResult, error) {
	return c.consumeToken(ctx, ipLimitPrefix+hashIP(ip), float64(ratePerSecond), burst, ipLimitTTL)
}

func (c *Cache) consumeToken(ctx context.Context, key string, rate float64, burst int, ttl time.Duration) (*RateLimitResult, error) {
	res, err := tokenBucket.Run(ctx, c.client,
		[]string{key},
		rate, burst, time.Now().Unix(), int(ttl.Seconds()),
	).Int64Slice()
	if err != nil || len(res) != 3 {
		// Redis being down must not take the API with it: fail open.
		return allowAll(burst), nil
	}

	return &RateLimitResult{
		Allowed:    res[0] == 1,
		Remaining:  res[2],
		ResetAt:    time.Now().Add(time.Duration(float64(time.Second) / rate)),
		RetryAfter: time.Duration(res[1]) * time.Second,
	}, nil
}

func allowAll(burst int) *RateLimitResult {
	return &RateLimitResult{
		Allowed:   true,
		Remaining: int64(burst),
		ResetAt:   time.Now().Add(time.Minute),
	}
}

// hashIP truncates a SHA256 digest to 16 hex chars, keeping raw client
// addresses out of Redis.
func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:8])
}

//go:build integration

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/workhive/workhive/internal/cache"
	"github.com/workhive/workhive/internal/testutil"
)

func newRateLimitTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := cache.New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}
	return c
}

// ============================================================
// Token bucket under concurrent load
// ============================================================

func TestIntegrationRateLimit_SessionBudgetUnderConcurrency(t *testing.T) {
	c := newRateLimitTestCache(t)
	ctx := context.Background()

	const (
		sessionKey = "session-concurrent"
		rpm        = 10
		burst      = 5
		goroutines = 20
		perWorker  = 3
	)

	var allowed, rejected int64
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				result, err := c.CheckAPIRateLimit(ctx, sessionKey, rpm, burst)
				if err != nil {
					t.Errorf("CheckAPIRateLimit: %v", err)
					return
				}
				if result.Allowed {
					atomic.AddInt64(&allowed, 1)
				} else {
					atomic.AddInt64(&rejected, 1)
				}
			}
		}()
	}
	wg.Wait()

	t.Logf("session budget: %d allowed, %d rejected", allowed, rejected)

	// 60 attempts against a bucket of 5 with 10 rpm refill: the bucket plus
	// at most one refill's worth may pass, never more.
	if allowed > burst+rpm {
		t.Errorf("allowed = %d, want <= %d", allowed, burst+rpm)
	}
	if rejected == 0 {
		t.Error("no request was rejected")
	}
}

func TestIntegrationRateLimit_IPBudgetUnderConcurrency(t *testing.T) {
	c := newRateLimitTestCache(t)
	ctx := context.Background()

	const (
		clientIP = "203.0.113.7"
		rps      = 5
		burst    = 3
	)

	var allowed, rejected int64
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := c.CheckIPRateLimit(ctx, clientIP, rps, burst)
			if err != nil {
				t.Errorf("CheckIPRateLimit: %v", err)
				return
			}
			if result.Allowed {
				atomic.AddInt64(&allowed, 1)
			} else {
				atomic.AddInt64(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	t.Logf("ip budget: %d allowed, %d rejected", allowed, rejected)
	if rejected == 0 {
		t.Error("no request was rejected")
	}
}

func TestIntegrationRateLimit_SeparateIPsDoNotShareBuckets(t *testing.T) {
	c := newRateLimitTestCache(t)
	ctx := context.Background()

	// Exhaust one address's bucket.
	for i := 0; i < 5; i++ {
		if _, err := c.CheckIPRateLimit(ctx, "198.51.100.1", 1, 2); err != nil {
			t.Fatalf("CheckIPRateLimit: %v", err)
		}
	}

	// A different address still has a full bucket.
	result, err := c.CheckIPRateLimit(ctx, "198.51.100.2", 1, 2)
	if err != nil {
		t.Fatalf("CheckIPRateLimit: %v", err)
	}
	if !result.Allowed {
		t.Error("fresh address was rejected after exhausting a different one")
	}
}

// ============================================================
// Response shaping helpers
// ============================================================

func TestRateLimitResponseHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	setRateLimitHeaders(rec, 60, 45, time.Now().Add(time.Minute))

	if got := rec.Header().Get("X-RateLimit-Limit"); got != "60" {
		t.Errorf("X-RateLimit-Limit = %q, want 60", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "45" {
		t.Errorf("X-RateLimit-Remaining = %q, want 45", got)
	}
	if rec.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("X-RateLimit-Reset not set")
	}
}

func TestRateLimitErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeRateLimitError(rec, 5*time.Second)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if got := rec.Header().Get("Retry-After"); got != "5" {
		t.Errorf("Retry-After = %q, want 5", got)
	}

	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if body.Code == "" || body.Error == "" {
		t.Errorf("incomplete error envelope: %s", rec.Body.String())
	}
}

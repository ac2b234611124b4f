// Package analytics captures job view events and processes them into
// daily per-job statistics.
package analytics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/workhive/workhive/internal/metrics"
)

const (
	// StreamKey is the Redis stream for job view events.
	StreamKey = "stream:job_views"

	// DeadLetterStreamKey is the Redis stream for poison messages.
	DeadLetterStreamKey = "stream:job_views:dlq"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 100000

	// PublishTimeout is the max time to wait for Redis publish.
	PublishTimeout = 100 * time.Millisecond
)

// JobViewPayload is the compressed event format for the Redis stream.
type JobViewPayload struct {
	JobID       string `json:"jid"`
	Referrer    string `json:"r,omitempty"`  // truncated, query stripped
	UserAgent   string `json:"ua,omitempty"` // truncated
	VisitorHash string `json:"vh"`
	CountryCode string `json:"cc,omitempty"`
	ViewedAt    int64  `json:"t"` // Unix milliseconds
}

// Publisher enqueues job view events to the Redis stream.
type Publisher struct {
	redis   *redis.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher creates a view event publisher.
func NewPublisher(client *redis.Client, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		redis:   client,
		logger:  logger.With("component", "analytics.publisher"),
		metrics: recorder,
	}
}

// Publish adds a view event to the stream synchronously.
func (p *Publisher) Publish(ctx context.Context, event JobViewPayload) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishAsync publishes without blocking the caller. Errors are
// logged but not returned; losing a view count never fails a request.
func (p *Publisher) PublishAsync(event JobViewPayload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		streamID, err := p.Publish(ctx, event)
		if err != nil {
			p.logger.Warn("failed to publish view event",
				"job_id", event.JobID,
				"error", err,
			)
			p.metrics.IncViewEventPublished("dropped")
			return
		}

		p.logger.Debug("view event published",
			"job_id", event.JobID,
			"stream_id", streamID,
		)
		p.metrics.IncViewEventPublished("success")
	}()
}

// GenerateVisitorHash creates a privacy-safe visitor identifier.
// Uses SHA256(IP + UserAgent + daily_salt) truncated to 16 hex chars;
// the salt rotates at midnight UTC so visitors cannot be tracked
// across days.
func GenerateVisitorHash(ip, userAgent string, viewedAt time.Time) string {
	dailySalt := fmt.Sprintf("workhive:%s", viewedAt.UTC().Format("2006-01-02"))

	data := ip + userAgent + dailySalt
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])[:16]
}

// SanitizeReferrer cleans and truncates the referrer URL. Query
// parameters and fragments are stripped for privacy.
func SanitizeReferrer(ref string) string {
	if ref == "" {
		return ""
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}

	parsed.RawQuery = ""
	parsed.Fragment = ""

	sanitized := parsed.String()
	if len(sanitized) > 500 {
		return sanitized[:500]
	}
	return sanitized
}

// TruncateUserAgent truncates user agent to max 500 chars.
func TruncateUserAgent(ua string) string {
	if len(ua) > 500 {
		return ua[:500]
	}
	return ua
}

// ExtractCountryCode extracts the country code from the Cloudflare
// header. Returns empty string if the header is missing or invalid.
func ExtractCountryCode(cfIPCountry string) string {
	if cfIPCountry != "" && len(cfIPCountry) == 2 {
		return strings.ToUpper(cfIPCountry)
	}
	return ""
}

package model

import "time"

// JobViewEvent is one recorded view of a job-detail page. EventID is
// the Redis stream message ID and doubles as the idempotency key for
// persistence.
type JobViewEvent struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId"`
	JobID       string    `json:"jobId"`
	Referrer    string    `json:"referrer,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty"`
	VisitorHash string    `json:"visitorHash"`
	CountryCode string    `json:"countryCode,omitempty"`
	ViewedAt    time.Time `json:"viewedAt"`
}

// DailyJobStats is the per-job, per-day aggregate of view events.
type DailyJobStats struct {
	ID                string           `json:"id"`
	JobID             string           `json:"jobId"`
	Date              time.Time        `json:"date"`
	TotalViews        int64            `json:"totalViews"`
	UniqueVisitors    int64            `json:"uniqueVisitors"`
	ReferrerBreakdown map[string]int64 `json:"referrerBreakdown,omitempty"`
	CountryBreakdown  map[string]int64 `json:"countryBreakdown,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// JobViewSummary is the rolled-up view count surfaced on job details.
type JobViewSummary struct {
	JobID          string `json:"jobId"`
	TotalViews     int64  `json:"totalViews"`
	UniqueVisitors int64  `json:"uniqueVisitors"`
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workhive/workhive/internal/model"
)

// BulkInsertViewEvents inserts a batch of view events. event_id is the
// stream message ID, so redelivered messages are skipped by the
// conflict clause instead of double-counted.
func (r *Repository) BulkInsertViewEvents(ctx context.Context, events []*model.JobViewEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO job_view_events (
			id, event_id, job_id, referrer, user_agent,
			visitor_hash, country_code, viewed_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (event_id) DO NOTHING
	`

	for _, event := range events {
		batch.Queue(query,
			event.ID,
			event.EventID,
			event.JobID,
			nullableString(event.Referrer),
			nullableString(event.UserAgent),
			event.VisitorHash,
			nullableString(event.CountryCode),
			event.ViewedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(events); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert view event %d: %w", i, err)
		}
	}

	return nil
}

type dailyStatsKey struct {
	jobID string
	date  time.Time
}

// UpdateDailyJobStats recomputes the daily aggregates for every
// (job, day) touched by the batch. Recomputing from the event table
// keeps the upsert idempotent under redelivery.
func (r *Repository) UpdateDailyJobStats(ctx context.Context, events []*model.JobViewEvent) error {
	for _, key := range uniqueDailyKeys(events) {
		stat, err := r.recalculateDailyJobStat(ctx, key.jobID, key.date)
		if err != nil {
			return fmt.Errorf("recalculate daily stat %s:%s: %w", key.jobID, key.date.Format("2006-01-02"), err)
		}
		if err := r.upsertDailyJobStat(ctx, stat); err != nil {
			return fmt.Errorf("upsert daily stat %s:%s: %w", key.jobID, key.date.Format("2006-01-02"), err)
		}
	}
	return nil
}

func uniqueDailyKeys(events []*model.JobViewEvent) []dailyStatsKey {
	seen := make(map[string]dailyStatsKey)
	for _, event := range events {
		day := event.ViewedAt.UTC().Truncate(24 * time.Hour)
		seen[event.JobID+":"+day.Format("2006-01-02")] = dailyStatsKey{jobID: event.JobID, date: day}
	}

	keys := make([]dailyStatsKey, 0, len(seen))
	for _, key := range seen {
		keys = append(keys, key)
	}
	return keys
}

func (r *Repository) recalculateDailyJobStat(ctx context.Context, jobID string, date time.Time) (*model.DailyJobStats, error) {
	start := date.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	query := `
		SELECT COALESCE(referrer, ''), COALESCE(country_code, ''), visitor_hash
		FROM job_view_events
		WHERE job_id = $1 AND viewed_at >= $2 AND viewed_at < $3
	`

	rows, err := r.pool.Query(ctx, query, jobID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query view events: %w", err)
	}
	defer rows.Close()

	stat := &model.DailyJobStats{
		ID:                jobID + ":" + start.Format("2006-01-02"),
		JobID:             jobID,
		Date:              start,
		ReferrerBreakdown: make(map[string]int64),
		CountryBreakdown:  make(map[string]int64),
	}
	visitors := make(map[string]bool)

	for rows.Next() {
		var referrer, country, visitorHash string
		if err := rows.Scan(&referrer, &country, &visitorHash); err != nil {
			return nil, fmt.Errorf("scan view event: %w", err)
		}

		stat.TotalViews++
		if visitorHash != "" && !visitors[visitorHash] {
			visitors[visitorHash] = true
			stat.UniqueVisitors++
		}
		stat.ReferrerBreakdown[referrerDomain(referrer)]++
		if country != "" {
			stat.CountryBreakdown[country]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate view events: %w", err)
	}

	return stat, nil
}

func (r *Repository) upsertDailyJobStat(ctx context.Context, stat *model.DailyJobStats) error {
	referrerJSON, _ := json.Marshal(stat.ReferrerBreakdown)
	countryJSON, _ := json.Marshal(stat.CountryBreakdown)

	query := `
		INSERT INTO daily_job_stats (
			id, job_id, date, total_views, unique_visitors,
			referrer_breakdown, country_breakdown, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (job_id, date) DO UPDATE SET
			total_views = EXCLUDED.total_views,
			unique_visitors = EXCLUDED.unique_visitors,
			referrer_breakdown = EXCLUDED.referrer_breakdown,
			country_breakdown = EXCLUDED.country_breakdown,
			updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query,
		stat.ID,
		stat.JobID,
		stat.Date,
		stat.TotalViews,
		stat.UniqueVisitors,
		referrerJSON,
		countryJSON,
	)
	return err
}

// GetJobViewSummary returns the all-time view totals for a job. Jobs
// that were never viewed return a zero summary, not an error.
func (r *Repository) GetJobViewSummary(ctx context.Context, jobID string) (*model.JobViewSummary, error) {
	query := `
		SELECT COALESCE(SUM(total_views), 0), COALESCE(SUM(unique_visitors), 0)
		FROM daily_job_stats
		WHERE job_id = $1
	`

	summary := &model.JobViewSummary{JobID: jobID}
	err := r.pool.QueryRow(ctx, query, jobID).Scan(&summary.TotalViews, &summary.UniqueVisitors)
	if err != nil {
		return nil, fmt.Errorf("query view summary: %w", err)
	}
	return summary, nil
}

// GetDailyJobStats returns per-day aggregates for a job in a date range.
func (r *Repository) GetDailyJobStats(ctx context.Context, jobID string, from, to time.Time) ([]*model.DailyJobStats, error) {
	query := `
		SELECT id, job_id, date, total_views, unique_visitors,
		       referrer_breakdown, country_breakdown, created_at, updated_at
		FROM daily_job_stats
		WHERE job_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC
	`

	rows, err := r.pool.Query(ctx, query, jobID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []*model.DailyJobStats
	for rows.Next() {
		var stat model.DailyJobStats
		var referrerJSON, countryJSON []byte
		err := rows.Scan(
			&stat.ID,
			&stat.JobID,
			&stat.Date,
			&stat.TotalViews,
			&stat.UniqueVisitors,
			&referrerJSON,
			&countryJSON,
			&stat.CreatedAt,
			&stat.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan daily stat: %w", err)
		}
		if len(referrerJSON) > 0 {
			_ = json.Unmarshal(referrerJSON, &stat.ReferrerBreakdown)
		}
		if len(countryJSON) > 0 {
			_ = json.Unmarshal(countryJSON, &stat.CountryBreakdown)
		}
		stats = append(stats, &stat)
	}

	return stats, rows.Err()
}

// nullableString returns nil for empty strings so optional columns
// store NULL instead of "".
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// referrerDomain reduces a referrer URL to its host for aggregation.
func referrerDomain(ref string) string {
	if ref == "" {
		return "(direct)"
	}
	parsed, err := url.Parse(ref)
	if err != nil || parsed.Host == "" {
		return "(unknown)"
	}
	return parsed.Host
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workhive/workhive/internal/model"
)

// Common errors for job repository operations.
var (
	ErrJobNotFound = errors.New("job not found")
)

const jobColumns = `id, title, posted_by, category, summary, cover_image, owner_email, owner_uid, created_at, updated_at`

// CreateJob inserts a new job posting into the database.
func (r *Repository) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		job.ID,
		job.Title,
		job.PostedBy,
		job.Category,
		job.Summary,
		job.CoverImage,
		job.OwnerEmail,
		job.OwnerUID,
		job.CreatedAt,
		job.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetJobByID retrieves a job by its ID.
func (r *Repository) GetJobByID(ctx context.Context, id string) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job by ID: %w", err)
	}

	return job, nil
}

// ListJobs retrieves all job postings, newest first.
func (r *Repository) ListJobs(ctx context.Context) ([]*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC, id DESC`
	return r.queryJobs(ctx, query)
}

// ListRecentJobs retrieves the newest postings, bounded by limit.
func (r *Repository) ListRecentJobs(ctx context.Context, limit int) ([]*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC, id DESC LIMIT $1`
	return r.queryJobs(ctx, query, limit)
}

// ListJobsByOwner retrieves all postings owned by the given email, newest first.
func (r *Repository) ListJobsByOwner(ctx context.Context, email string) ([]*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE owner_email = $1 ORDER BY created_at DESC, id DESC`
	return r.queryJobs(ctx, query, email)
}

// UpdateJob updates a job's mutable fields: title, category, summary
// and cover image. Owner fields and created_at are never touched.
func (r *Repository) UpdateJob(ctx context.Context, job *model.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, category = $3, summary = $4, cover_image = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		job.ID,
		job.Title,
		job.Category,
		job.Summary,
		job.CoverImage,
		job.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	return nil
}

// DeleteJob permanently removes a job. There is no soft delete:
// a deleted posting is gone from every viewer's perspective.
func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	return nil
}

// queryJobs runs a jobs query and scans all rows.
func (r *Repository) queryJobs(ctx context.Context, query string, args ...any) ([]*model.Job, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	return jobs, nil
}

// scanJob scans a single row into a Job model.
func scanJob(row pgx.Row) (*model.Job, error) {
	var job model.Job
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.PostedBy,
		&job.Category,
		&job.Summary,
		&job.CoverImage,
		&job.OwnerEmail,
		&job.OwnerUID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	return &job, err
}

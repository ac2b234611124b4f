package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workhive/workhive/internal/model"
)

// Common errors for acceptance repository operations.
var (
	ErrAcceptanceNotFound = errors.New("acceptance not found")
	ErrAlreadyAccepted    = errors.New("job already accepted by this user")
)

const acceptanceColumns = `id, job_id, title, posted_by, posted_by_email, category, summary, cover_image, accepted_by, accepted_by_email, accepted_at`

// CreateAcceptance inserts a new acceptance record.
// The unique constraint on (job_id, accepted_by_email) closes the race
// between the client-side existence check and this insert.
func (r *Repository) CreateAcceptance(ctx context.Context, a *model.Acceptance) error {
	query := `
		INSERT INTO accepted_jobs (` + acceptanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.JobID,
		a.Title,
		a.PostedBy,
		a.PostedByEmail,
		a.Category,
		a.Summary,
		a.CoverImage,
		a.AcceptedBy,
		a.AcceptedByEmail,
		a.AcceptedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyAccepted
		}
		return fmt.Errorf("failed to create acceptance: %w", err)
	}

	return nil
}

// AcceptanceExists reports whether the given viewer already accepted the job.
func (r *Repository) AcceptanceExists(ctx context.Context, jobID, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accepted_jobs WHERE job_id = $1 AND accepted_by_email = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, jobID, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check acceptance existence: %w", err)
	}

	return exists, nil
}

// ListAcceptancesByEmail retrieves all acceptance records for a viewer,
// newest first.
func (r *Repository) ListAcceptancesByEmail(ctx context.Context, email string) ([]*model.Acceptance, error) {
	query := `SELECT ` + acceptanceColumns + ` FROM accepted_jobs WHERE accepted_by_email = $1 ORDER BY accepted_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list acceptances: %w", err)
	}
	defer rows.Close()

	var accs []*model.Acceptance
	for rows.Next() {
		a, err := scanAcceptance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan acceptance: %w", err)
		}
		accs = append(accs, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating acceptances: %w", err)
	}

	return accs, nil
}

// GetAcceptanceByID retrieves a single acceptance record.
func (r *Repository) GetAcceptanceByID(ctx context.Context, id string) (*model.Acceptance, error) {
	query := `SELECT ` + acceptanceColumns + ` FROM accepted_jobs WHERE id = $1`

	a, err := scanAcceptance(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAcceptanceNotFound
		}
		return nil, fmt.Errorf("failed to get acceptance by ID: %w", err)
	}

	return a, nil
}

// DeleteAcceptance removes an acceptance record. Both "mark done" and
// "cancel" land here; the distinction is presentation only and is not
// persisted.
func (r *Repository) DeleteAcceptance(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM accepted_jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete acceptance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrAcceptanceNotFound
	}

	return nil
}

// scanAcceptance scans a single row into an Acceptance model.
func scanAcceptance(row pgx.Row) (*model.Acceptance, error) {
	var a model.Acceptance
	err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.Title,
		&a.PostedBy,
		&a.PostedByEmail,
		&a.Category,
		&a.Summary,
		&a.CoverImage,
		&a.AcceptedBy,
		&a.AcceptedByEmail,
		&a.AcceptedAt,
	)
	return &a, err
}

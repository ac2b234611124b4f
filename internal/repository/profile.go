package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/workhive/workhive/internal/model"
)

// Common errors for profile repository operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
)

const profileColumns = `user_id, email, display_name, photo_url, bio, skills, location, updated_at`

// UpsertProfile creates or fully replaces a user's profile fields.
// Profile updates are whole-record PUTs, not per-field patches.
func (r *Repository) UpsertProfile(ctx context.Context, p *model.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    photo_url = EXCLUDED.photo_url,
		    bio = EXCLUDED.bio,
		    skills = EXCLUDED.skills,
		    location = EXCLUDED.location,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		p.UserID,
		p.Email,
		p.DisplayName,
		p.PhotoURL,
		p.Bio,
		pq.Array(p.Skills),
		p.Location,
		p.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// GetProfileByUserID retrieves a profile by the owning user's ID.
func (r *Repository) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return r.scanProfile(r.pool.QueryRow(ctx, query, userID))
}

// GetProfileByEmail retrieves a profile by email. Public profile pages
// resolve their target by email, not user ID.
func (r *Repository) GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return r.scanProfile(r.pool.QueryRow(ctx, query, email))
}

// scanProfile scans a single row into a Profile model.
func (r *Repository) scanProfile(row pgx.Row) (*model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.UserID,
		&p.Email,
		&p.DisplayName,
		&p.PhotoURL,
		&p.Bio,
		pq.Array(&p.Skills),
		&p.Location,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

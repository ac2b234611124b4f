package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workhive/workhive/internal/model"
)

// Common errors for category repository operations.
var (
	ErrCategoryNotFound = errors.New("category not found")
)

const categoryColumns = `id, title, image, user_id, slug, created_at`

// CreateCategory inserts a new category into the database.
func (r *Repository) CreateCategory(ctx context.Context, cat *model.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		cat.ID,
		cat.Title,
		cat.Image,
		cat.UserID,
		cat.Slug,
		cat.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetCategoryByID retrieves a category by its ID.
func (r *Repository) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	cat, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}

	return cat, nil
}

// ListCategories retrieves all categories, newest first.
func (r *Repository) ListCategories(ctx context.Context) ([]*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at DESC, id DESC`
	return r.queryCategories(ctx, query)
}

// ListCategoriesByUser retrieves categories created by the given user.
func (r *Repository) ListCategoriesByUser(ctx context.Context, userID string) ([]*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	return r.queryCategories(ctx, query, userID)
}

// DeleteCategory removes a category. Jobs referencing it keep their
// category value; deletion never cascades.
func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// queryCategories runs a categories query and scans all rows.
func (r *Repository) queryCategories(ctx context.Context, query string, args ...any) ([]*model.Category, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var cats []*model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cats = append(cats, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return cats, nil
}

// scanCategory scans a single row into a Category model.
func scanCategory(row pgx.Row) (*model.Category, error) {
	var cat model.Category
	err := row.Scan(
		&cat.ID,
		&cat.Title,
		&cat.Image,
		&cat.UserID,
		&cat.Slug,
		&cat.CreatedAt,
	)
	return &cat, err
}

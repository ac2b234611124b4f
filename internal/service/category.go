package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/workhive/workhive/internal/metrics"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/repository"
)

// Service errors for category operations.
var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrMissingCategoryTitle = errors.New("category title is required")
	ErrNotCategoryOwner     = errors.New("viewer does not own this category")
)

// CategoryService handles category business logic.
type CategoryService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo *repository.Repository, recorder metrics.Recorder) *CategoryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CategoryService{
		repo:    repo,
		metrics: recorder,
	}
}

// Slugify derives a URL slug from a category title by lowercasing and
// replacing whitespace runs with single hyphens.
func Slugify(title string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(title)))
	return strings.Join(fields, "-")
}

// CreateCategoryInput defines input for creating a category.
type CreateCategoryInput struct {
	Title  string
	Image  string
	UserID string
}

// CreateCategory creates a new category owned by the given user.
func (s *CategoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*model.Category, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrMissingCategoryTitle
	}

	cat := &model.Category{
		ID:        ulid.Make().String(),
		Title:     title,
		Image:     strings.TrimSpace(input.Image),
		UserID:    input.UserID,
		Slug:      Slugify(title),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.metrics.IncCategoryCreated()

	return cat, nil
}

// ListCategories retrieves all categories.
func (s *CategoryService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.repo.ListCategories(ctx)
}

// ListCategoriesByUser retrieves categories created by the given user.
func (s *CategoryService) ListCategoriesByUser(ctx context.Context, userID string) ([]*model.Category, error) {
	return s.repo.ListCategoriesByUser(ctx, userID)
}

// DeleteCategory removes a category after verifying its creator.
// Jobs referencing the category are untouched; a dangling category
// title on a job is allowed.
func (s *CategoryService) DeleteCategory(ctx context.Context, id, viewerUID string) error {
	cat, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if cat.UserID != viewerUID {
		return ErrNotCategoryOwner
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	s.metrics.IncCategoryDeleted()

	return nil
}

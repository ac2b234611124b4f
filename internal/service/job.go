// Package service provides business logic for the application.
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

// Service errors for job operations.
var (
	ErrJobNotFound      = errors.New("job not found")
	ErrMissingJobFields = errors.New("title, postedBy, category and summary are required")
	ErrNotJobOwner      = errors.New("viewer does not own this job")
)

const defaultRecentLimit = 6

// JobService handles job posting business logic.
type JobService struct {
	repo        *repository.Repository
	metrics     metrics.Recorder
	recentLimit int
}

// NewJobService creates a new JobService.
func NewJobService(repo *repository.Repository, recorder metrics.Recorder, recentLimit int) *JobService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}
	return &JobService{
		repo:        repo,
		metrics:     recorder,
		recentLimit: recentLimit,
	}
}

// CreateJobInput defines input for creating a job posting.
type CreateJobInput struct {
	Title      string
	PostedBy   string
	Category   string
	Summary    string
	CoverImage string
	OwnerEmail string
	OwnerUID   string
}

// CreateJob creates a new job posting owned by the given email.
func (s *JobService) CreateJob(ctx context.Context, input CreateJobInput) (*model.Job, error) {
	if hasEmptyField(input.Title, input.PostedBy, input.Category, input.Summary) {
		return nil, ErrMissingJobFields
	}
	if strings.TrimSpace(input.OwnerEmail) == "" {
		return nil, ErrMissingJobFields
	}

	now := time.Now().UTC()
	job := &model.Job{
		ID:         ulid.Make().String(),
		Title:      strings.TrimSpace(input.Title),
		PostedBy:   strings.TrimSpace(input.PostedBy),
		Category:   strings.TrimSpace(input.Category),
		Summary:    strings.TrimSpace(input.Summary),
		CoverImage: strings.TrimSpace(input.CoverImage),
		OwnerEmail: strings.ToLower(strings.TrimSpace(input.OwnerEmail)),
		OwnerUID:   input.OwnerUID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.metrics.IncJobCreated()

	return job, nil
}

// GetJob retrieves a job posting by ID.
func (s *JobService) GetJob(ctx context.Context, id string) (*model.Job, error) {
	job, err := s.repo.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	return job, nil
}

// ViewSummary returns the rolled-up view counts for a job. The job
// must exist; a job that was never viewed gets a zero summary.
func (s *JobService) ViewSummary(ctx context.Context, id string) (*model.JobViewSummary, error) {
	if _, err := s.GetJob(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetJobViewSummary(ctx, id)
}

// ListJobs retrieves all job postings, newest first.
func (s *JobService) ListJobs(ctx context.Context) ([]*model.Job, error) {
	return s.repo.ListJobs(ctx)
}

// ListRecentJobs retrieves the bounded recent subset of postings.
func (s *JobService) ListRecentJobs(ctx context.Context) ([]*model.Job, error) {
	return s.repo.ListRecentJobs(ctx, s.recentLimit)
}

// ListJobsByOwner retrieves all postings owned by the given email.
func (s *JobService) ListJobsByOwner(ctx context.Context, email string) ([]*model.Job, error) {
	return s.repo.ListJobsByOwner(ctx, email)
}

// UpdateJobInput defines input for updating a job posting.
// Only title, category, summary and cover image are mutable;
// owner fields and creation time never change across an update.
type UpdateJobInput struct {
	ID          string
	Title       string
	Category    string
	Summary     string
	CoverImage  string
	ViewerEmail string
}

// UpdateJob updates a job's mutable fields after verifying ownership.
func (s *JobService) UpdateJob(ctx context.Context, input UpdateJobInput) (*model.Job, error) {
	if hasEmptyField(input.Title, input.Category, input.Summary) {
		return nil, ErrMissingJobFields
	}

	job, err := s.GetJob(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if !job.OwnedBy(input.ViewerEmail) {
		return nil, ErrNotJobOwner
	}

	job.Title = strings.TrimSpace(input.Title)
	job.Category = strings.TrimSpace(input.Category)
	job.Summary = strings.TrimSpace(input.Summary)
	job.CoverImage = strings.TrimSpace(input.CoverImage)
	job.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	s.metrics.IncJobUpdated()

	return job, nil
}

// DeleteJob permanently removes a job after verifying ownership.
func (s *JobService) DeleteJob(ctx context.Context, id, viewerEmail string) error {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return err
	}

	if !job.OwnedBy(viewerEmail) {
		return ErrNotJobOwner
	}

	if err := s.repo.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return err
	}

	s.metrics.IncJobDeleted()

	return nil
}

// hasEmptyField reports whether any of the values is blank after trimming.
func hasEmptyField(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

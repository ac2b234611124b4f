package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/workhive/workhive/internal/cache"
	"github.com/workhive/workhive/internal/metrics"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/repository"
)

// Service errors for acceptance operations.
var (
	ErrAcceptanceNotFound = errors.New("acceptance not found")
	ErrAlreadyAccepted    = errors.New("job already accepted")
	ErrOwnJobAccept       = errors.New("cannot accept own job")
	ErrNotAcceptanceOwner = errors.New("viewer does not own this acceptance")
)

// AcceptanceService handles the accept / check / remove lifecycle.
type AcceptanceService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	metrics metrics.Recorder
}

// NewAcceptanceService creates a new AcceptanceService. The cache is
// optional; when nil every check goes straight to the database.
func NewAcceptanceService(repo *repository.Repository, c *cache.Cache, recorder metrics.Recorder) *AcceptanceService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AcceptanceService{
		repo:    repo,
		cache:   c,
		metrics: recorder,
	}
}

// AcceptInput identifies the viewer accepting a job.
type AcceptInput struct {
	JobID       string
	ViewerEmail string
	DisplayName string
}

// Accept records the viewer's commitment to a job. Owners cannot accept
// their own postings, and a viewer can hold at most one acceptance per job.
func (s *AcceptanceService) Accept(ctx context.Context, input AcceptInput) (*model.Acceptance, error) {
	email := strings.ToLower(strings.TrimSpace(input.ViewerEmail))

	job, err := s.repo.GetJobByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if job.OwnedBy(email) {
		return nil, ErrOwnJobAccept
	}

	acc := model.AcceptanceSnapshot(job, input.DisplayName, email)
	acc.ID = ulid.Make().String()
	acc.AcceptedAt = time.Now().UTC()

	if err := s.repo.CreateAcceptance(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrAlreadyAccepted) {
			return nil, ErrAlreadyAccepted
		}
		return nil, fmt.Errorf("failed to accept job: %w", err)
	}

	s.invalidateCheck(ctx, job.ID, email)
	s.metrics.IncAcceptanceCreated()

	return acc, nil
}

// CheckAccepted reports whether the viewer has an acceptance for the job.
// Results are cached briefly; the database remains the authority.
func (s *AcceptanceService) CheckAccepted(ctx context.Context, jobID, viewerEmail string) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(viewerEmail))
	start := time.Now()
	defer func() {
		s.metrics.ObserveAcceptCheckDuration(time.Since(start))
	}()

	if s.cache != nil {
		accepted, err := s.cache.GetAcceptedCheck(ctx, jobID, email)
		if err == nil {
			s.metrics.IncAcceptCheckCacheHit()
			return accepted, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("accepted-check cache read failed", "error", err)
		}
	}

	s.metrics.IncAcceptCheckCacheMiss()

	accepted, err := s.repo.AcceptanceExists(ctx, jobID, email)
	if err != nil {
		return false, err
	}

	if s.cache != nil {
		if err := s.cache.SetAcceptedCheck(ctx, jobID, email, accepted); err != nil {
			slog.Warn("accepted-check cache write failed", "error", err)
		}
	}

	return accepted, nil
}

// ListForViewer retrieves the viewer's accepted tasks, newest first.
func (s *AcceptanceService) ListForViewer(ctx context.Context, viewerEmail string) ([]*model.Acceptance, error) {
	email := strings.ToLower(strings.TrimSpace(viewerEmail))
	return s.repo.ListAcceptancesByEmail(ctx, email)
}

// Remove deletes an acceptance record. Marking a task done and cancelling
// it are the same operation here; only the acceptor may do either.
func (s *AcceptanceService) Remove(ctx context.Context, id, viewerEmail string) error {
	email := strings.ToLower(strings.TrimSpace(viewerEmail))

	acc, err := s.repo.GetAcceptanceByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAcceptanceNotFound) {
			return ErrAcceptanceNotFound
		}
		return err
	}

	if !strings.EqualFold(acc.AcceptedByEmail, email) {
		return ErrNotAcceptanceOwner
	}

	if err := s.repo.DeleteAcceptance(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAcceptanceNotFound) {
			return ErrAcceptanceNotFound
		}
		return err
	}

	s.invalidateCheck(ctx, acc.JobID, email)
	s.metrics.IncAcceptanceRemoved()

	return nil
}

func (s *AcceptanceService) invalidateCheck(ctx context.Context, jobID, email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteAcceptedCheck(ctx, jobID, email); err != nil {
		slog.Warn("accepted-check cache invalidation failed", "job_id", jobID, "error", err)
	}
}

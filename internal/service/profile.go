package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/workhive/workhive/internal/metrics"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/repository"
)

// ErrNotProfileOwner is returned when a viewer tries to update someone
// else's profile.
var ErrNotProfileOwner = errors.New("viewer does not own this profile")

// ProfileService handles profile reads and whole-record updates.
type ProfileService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo *repository.Repository, recorder metrics.Recorder) *ProfileService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ProfileService{
		repo:    repo,
		metrics: recorder,
	}
}

// Get resolves a profile by user ID or email. Keys containing "@" are
// treated as emails, which is how public profile pages address their
// target. A missing profile is not an error: an empty record keyed by
// the lookup value is returned so every user has a presentable page.
func (s *ProfileService) Get(ctx context.Context, uidOrEmail string) (*model.Profile, error) {
	key := strings.TrimSpace(uidOrEmail)

	var (
		p   *model.Profile
		err error
	)
	if strings.Contains(key, "@") {
		p, err = s.repo.GetProfileByEmail(ctx, strings.ToLower(key))
	} else {
		p, err = s.repo.GetProfileByUserID(ctx, key)
	}

	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return s.emptyProfile(key), nil
		}
		return nil, err
	}

	return p, nil
}

// emptyProfile builds the implicit blank profile for users who have
// never saved one.
func (s *ProfileService) emptyProfile(key string) *model.Profile {
	p := &model.Profile{Skills: []string{}}
	if strings.Contains(key, "@") {
		p.Email = strings.ToLower(key)
	} else {
		p.UserID = key
	}
	return p
}

// UpdateProfileInput carries the whole replacement record for a profile.
type UpdateProfileInput struct {
	UserID      string
	Email       string
	DisplayName string
	PhotoURL    string
	Bio         string
	Skills      []string
	Location    string
}

// Update fully replaces the viewer's own profile. The target user ID
// must match the authenticated session.
func (s *ProfileService) Update(ctx context.Context, viewerUID string, input UpdateProfileInput) (*model.Profile, error) {
	if input.UserID != viewerUID {
		return nil, ErrNotProfileOwner
	}

	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}

	p := &model.Profile{
		UserID:      input.UserID,
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		DisplayName: strings.TrimSpace(input.DisplayName),
		PhotoURL:    strings.TrimSpace(input.PhotoURL),
		Bio:         input.Bio,
		Skills:      skills,
		Location:    strings.TrimSpace(input.Location),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return p, nil
}

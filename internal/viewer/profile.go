package viewer

import (
	"context"
	"strings"

	"github.com/workhive/workhive/internal/client"
	"github.com/workhive/workhive/internal/model"
)

// Profiles resolves own and public profile views.
type Profiles struct {
	api     *client.Client
	session *Session
}

// NewProfiles builds the profile view helper.
func NewProfiles(api *client.Client, session *Session) *Profiles {
	return &Profiles{api: api, session: session}
}

// Own returns the signed-in viewer's profile. Users who never saved
// one get an empty record.
func (p *Profiles) Own(ctx context.Context) (*model.Profile, error) {
	user, err := p.session.RequireUser()
	if err != nil {
		return nil, err
	}
	return p.api.GetProfile(ctx, user.UserID)
}

// Update replaces the viewer's editable profile fields in a single
// PUT. Fields omitted by the caller are cleared, not preserved.
func (p *Profiles) Update(ctx context.Context, fields client.ProfileFields) (*model.Profile, error) {
	user, err := p.session.RequireUser()
	if err != nil {
		return nil, err
	}
	return p.api.UpdateProfile(ctx, user.UserID, fields)
}

// PublicProfile aggregates a profile record with the jobs its owner
// posted.
type PublicProfile struct {
	Profile *model.Profile
	Jobs    []*model.Job
}

// Public resolves a profile by email for read-only display, pairing it
// with that user's postings. When the profile record has an empty
// display name, it is backfilled from the first posting's postedBy, a
// fallback for users who never filled in a profile. Works for
// anonymous viewers; no session is required.
func (p *Profiles) Public(ctx context.Context, email string) (*PublicProfile, error) {
	profile, err := p.api.GetProfile(ctx, email)
	if err != nil {
		return nil, err
	}

	posted, err := p.postedBy(ctx, email)
	if err != nil {
		return nil, err
	}

	if profile.DisplayName == "" && len(posted) > 0 {
		profile.DisplayName = posted[0].PostedBy
	}
	return &PublicProfile{Profile: profile, Jobs: posted}, nil
}

// postedBy collects the jobs owned by email. The keyed myAddedJobs
// endpoint is owner-only, so it serves the viewer looking at their own
// public page; every other profile is assembled from the public catalog.
func (p *Profiles) postedBy(ctx context.Context, email string) ([]*model.Job, error) {
	if user := p.session.CurrentUser(); user != nil && strings.EqualFold(user.Email, email) {
		return p.api.MyAddedJobs(ctx, email)
	}

	all, err := p.api.AllJobs(ctx)
	if err != nil {
		return nil, err
	}
	posted := make([]*model.Job, 0, 4)
	for _, job := range all {
		if job.OwnedBy(email) {
			posted = append(posted, job)
		}
	}
	return posted, nil
}

package viewer

import (
	"context"
	"errors"
	"sync"

	"github.com/workhive/workhive/internal/client"
	"github.com/workhive/workhive/internal/model"
)

// Acceptance workflow errors raised locally, before any request.
var (
	ErrOwnJob          = errors.New("viewer: cannot accept your own posting")
	ErrRequestInFlight = errors.New("viewer: request already in flight")
)

// Action is the state of the job-detail action region.
type Action int

const (
	// ActionSignInPrompt asks anonymous viewers to sign in.
	ActionSignInPrompt Action = iota
	// ActionOwnerNotice marks the viewer's own posting; no accept control.
	ActionOwnerNotice
	// ActionAccept is the enabled accept control.
	ActionAccept
	// ActionAccepted confirms an existing acceptance; control disabled.
	ActionAccepted
)

// JobDetail is the view model of a single posting plus its acceptance
// workflow. Loads are keyed by a generation counter so a late response
// for a superseded job id never overwrites the current one.
type JobDetail struct {
	api     *client.Client
	session *Session

	mu          sync.Mutex
	gen         uint64
	jobID       string
	job         *model.Job
	hasAccepted bool
	err         error
	accepting   bool
}

// NewJobDetail builds a detail view backed by the given session.
func NewJobDetail(api *client.Client, session *Session) *JobDetail {
	return &JobDetail{api: api, session: session}
}

// Load fetches the job and, for authenticated non-owners, whether the
// viewer already accepted it. Responses belonging to an older Load are
// discarded silently.
func (d *JobDetail) Load(ctx context.Context, jobID string) error {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.jobID = jobID
	d.mu.Unlock()

	job, err := d.api.JobDetails(ctx, jobID)
	if err != nil {
		d.store(gen, nil, false, err)
		return err
	}

	accepted := false
	if user := d.session.CurrentUser(); user != nil && !job.OwnedBy(user.Email) {
		accepted, err = d.api.CheckAccepted(ctx, jobID, user.Email)
		if err != nil {
			d.store(gen, nil, false, err)
			return err
		}
	}

	d.store(gen, job, accepted, nil)
	return nil
}

// Job returns the loaded posting, or nil.
func (d *JobDetail) Job() *model.Job {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.job
}

// Err returns the error of the last failed load, or nil.
func (d *JobDetail) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Action resolves the rendered action from (isAuthenticated, isOwner,
// hasAccepted).
func (d *JobDetail) Action() Action {
	user := d.session.CurrentUser()

	d.mu.Lock()
	defer d.mu.Unlock()

	if user == nil {
		return ActionSignInPrompt
	}
	if d.job != nil && d.job.OwnedBy(user.Email) {
		return ActionOwnerNotice
	}
	if d.hasAccepted {
		return ActionAccepted
	}
	return ActionAccept
}

// Accept submits an acceptance for the loaded job. Owners are refused
// locally without a request, independent of the rendered action, as a
// guard against stale UI. On success hasAccepted flips to true; on
// failure state is unchanged and the error is retryable.
func (d *JobDetail) Accept(ctx context.Context) (*model.Acceptance, error) {
	user, err := d.session.RequireUser()
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	job := d.job
	if job == nil {
		d.mu.Unlock()
		return nil, errors.New("viewer: no job loaded")
	}
	if job.OwnedBy(user.Email) {
		d.mu.Unlock()
		return nil, ErrOwnJob
	}
	if d.accepting {
		d.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	d.accepting = true
	jobID := job.ID
	d.mu.Unlock()

	acc, err := d.api.AcceptJob(ctx, jobID)

	d.mu.Lock()
	d.accepting = false
	if err == nil && d.jobID == jobID {
		d.hasAccepted = true
	}
	d.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return acc, nil
}

// store commits a load result unless a newer Load has started since.
func (d *JobDetail) store(gen uint64, job *model.Job, accepted bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return
	}
	d.job = job
	d.hasAccepted = accepted
	d.err = err
}

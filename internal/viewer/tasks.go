package viewer

import (
	"context"
	"sync"

	"github.com/workhive/workhive/internal/client"
	"github.com/workhive/workhive/internal/model"
)

// Tasks manages the viewer's accepted-job list. Mark-done and cancel
// are the same destructive operation; only the confirmation step and
// the toast wording differ, and neither distinction is persisted.
type Tasks struct {
	api     *client.Client
	session *Session

	mu    sync.Mutex
	items []*model.Acceptance
	err   error
}

// NewTasks builds the accepted-task view for the signed-in session.
func NewTasks(api *client.Client, session *Session) *Tasks {
	return &Tasks{api: api, session: session}
}

// Load fetches the viewer's acceptances. Zero acceptances is a normal
// empty list, not an error.
func (t *Tasks) Load(ctx context.Context) error {
	user, err := t.session.RequireUser()
	if err != nil {
		return err
	}

	items, err := t.api.MyAcceptedJobs(ctx, user.Email)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.items = nil
		t.err = err
		return err
	}
	t.items = items
	t.err = nil
	return nil
}

// Items returns the loaded acceptances.
func (t *Tasks) Items() []*model.Acceptance {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.items
}

// Err returns the error of the last failed load, or nil.
func (t *Tasks) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// MarkDone completes an acceptance. No confirmation step; the record
// is deleted and dropped from the local list.
func (t *Tasks) MarkDone(ctx context.Context, id string) error {
	return t.remove(ctx, id)
}

// Cancel withdraws an acceptance after interactive confirmation. A
// declined confirmation issues no request.
func (t *Tasks) Cancel(ctx context.Context, id string, confirm func() bool) error {
	if confirm == nil || !confirm() {
		return ErrConfirmationDeclined
	}
	return t.remove(ctx, id)
}

// remove deletes the acceptance and removes exactly that id from the
// local list, without a refetch.
func (t *Tasks) remove(ctx context.Context, id string) error {
	if _, err := t.session.RequireUser(); err != nil {
		return err
	}
	if err := t.api.RemoveAcceptedJob(ctx, id); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	kept := make([]*model.Acceptance, 0, len(t.items))
	for _, item := range t.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	t.items = kept
	return nil
}

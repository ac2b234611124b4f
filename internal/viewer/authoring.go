package viewer

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/workhive/workhive/internal/client"
	"github.com/workhive/workhive/internal/model"
)

// Authoring validation errors, returned before any request is issued.
var (
	ErrMissingJobFields     = errors.New("viewer: title, posted by, category and summary are required")
	ErrMissingCategoryTitle = errors.New("viewer: category title is required")
	ErrConfirmationDeclined = errors.New("viewer: confirmation declined")
)

// Authoring drives the job and category mutation forms. None of the
// operations apply optimistic updates; local lists change only after
// the server confirms. Submissions are serialized by an in-flight flag
// so a double click cannot issue a duplicate request.
type Authoring struct {
	api     *client.Client
	session *Session

	mu         sync.Mutex
	submitting bool
}

// NewAuthoring builds an authoring view for the signed-in session.
func NewAuthoring(api *client.Client, session *Session) *Authoring {
	return &Authoring{api: api, session: session}
}

// CreateJob validates the required fields, fills postedBy from the
// session when the form leaves it blank, and submits.
func (a *Authoring) CreateJob(ctx context.Context, fields client.JobFields) (*model.Job, error) {
	user, err := a.session.RequireUser()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(fields.PostedBy) == "" {
		fields.PostedBy = user.DisplayName
	}
	if hasBlankRequired(fields) {
		return nil, ErrMissingJobFields
	}

	if err := a.begin(); err != nil {
		return nil, err
	}
	defer a.end()

	return a.api.AddJob(ctx, fields)
}

// UpdateJob submits the mutable fields for an existing posting. It
// does not re-check ownership; the backend is the authority and its
// rejection surfaces as a retryable error.
func (a *Authoring) UpdateJob(ctx context.Context, id string, fields client.JobFields) (*model.Job, error) {
	if _, err := a.session.RequireUser(); err != nil {
		return nil, err
	}
	if hasBlankRequired(fields) {
		return nil, ErrMissingJobFields
	}

	if err := a.begin(); err != nil {
		return nil, err
	}
	defer a.end()

	return a.api.UpdateJob(ctx, id, fields)
}

// DeleteJob removes one of the viewer's own postings.
func (a *Authoring) DeleteJob(ctx context.Context, id string) error {
	if _, err := a.session.RequireUser(); err != nil {
		return err
	}
	return a.api.DeleteJob(ctx, id)
}

// CategoryOptions merges the global category list with the viewer's
// own, deduplicated by slug, for the authoring category picker.
func (a *Authoring) CategoryOptions(ctx context.Context) ([]*model.Category, error) {
	user, err := a.session.RequireUser()
	if err != nil {
		return nil, err
	}

	global, err := a.api.AllCategories(ctx)
	if err != nil {
		return nil, err
	}
	own, err := a.api.UserCategories(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(global))
	merged := make([]*model.Category, 0, len(global)+len(own))
	for _, c := range append(global, own...) {
		if seen[c.Slug] {
			continue
		}
		seen[c.Slug] = true
		merged = append(merged, c)
	}
	return merged, nil
}

// CreateCategory adds a category inline from the authoring form. The
// server derives the slug from the title.
func (a *Authoring) CreateCategory(ctx context.Context, title, image string) (*model.Category, error) {
	if _, err := a.session.RequireUser(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrMissingCategoryTitle
	}
	return a.api.AddCategory(ctx, title, image)
}

// DeleteCategory removes a category after interactive confirmation.
// A declined confirmation issues no request.
func (a *Authoring) DeleteCategory(ctx context.Context, id string, confirm func() bool) error {
	if _, err := a.session.RequireUser(); err != nil {
		return err
	}
	if confirm == nil || !confirm() {
		return ErrConfirmationDeclined
	}
	return a.api.DeleteCategory(ctx, id)
}

func (a *Authoring) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.submitting {
		return ErrRequestInFlight
	}
	a.submitting = true
	return nil
}

func (a *Authoring) end() {
	a.mu.Lock()
	a.submitting = false
	a.mu.Unlock()
}

func hasBlankRequired(f client.JobFields) bool {
	return strings.TrimSpace(f.Title) == "" ||
		strings.TrimSpace(f.PostedBy) == "" ||
		strings.TrimSpace(f.Category) == "" ||
		strings.TrimSpace(f.Summary) == ""
}

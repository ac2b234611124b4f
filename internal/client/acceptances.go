package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/workhive/workhive/internal/model"
)

// CheckAccepted reports whether the viewer already accepted the job.
func (c *Client) CheckAccepted(ctx context.Context, jobID, email string) (bool, error) {
	var envelope struct {
		Accepted bool `json:"accepted"`
	}
	path := "/api/v1/accepted-jobs/check-accepted/" + url.PathEscape(jobID) + "/" + url.PathEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return false, err
	}
	return envelope.Accepted, nil
}

// AcceptJob records the viewer's commitment to a job.
func (c *Client) AcceptJob(ctx context.Context, jobID string) (*model.Acceptance, error) {
	body := map[string]string{"jobId": jobID}

	var envelope struct {
		Data *model.Acceptance `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/accepted-jobs/accept-job", body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// MyAcceptedJobs fetches the viewer's accepted tasks. The endpoint
// answers {"data":[...]} and 404 when there are none; the 404 is
// empty-list semantics, not an error.
func (c *Client) MyAcceptedJobs(ctx context.Context, email string) ([]*model.Acceptance, error) {
	var envelope struct {
		Data []*model.Acceptance `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/accepted-jobs/my-accepted-jobs/"+url.PathEscape(email), nil, &envelope)
	if err != nil {
		if IsNotFound(err) {
			return []*model.Acceptance{}, nil
		}
		return nil, err
	}
	return envelope.Data, nil
}

// RemoveAcceptedJob deletes one acceptance record. Both mark-done and
// cancel resolve to this call.
func (c *Client) RemoveAcceptedJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/accepted-jobs/remove-accepted-job/"+url.PathEscape(id), nil, nil)
}

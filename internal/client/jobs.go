package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/workhive/workhive/internal/model"
)

// JobFields carries the writable fields of a job posting.
type JobFields struct {
	Title      string `json:"title"`
	PostedBy   string `json:"postedBy,omitempty"`
	Category   string `json:"category"`
	Summary    string `json:"summary"`
	CoverImage string `json:"coverImage,omitempty"`
}

// RecentJobs fetches the bounded recent posting list.
// The endpoint answers {"jobs":[...]}.
func (c *Client) RecentJobs(ctx context.Context) ([]*model.Job, error) {
	var envelope struct {
		Jobs []*model.Job `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs/recent-jobs", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Jobs, nil
}

// AllJobs fetches the full posting list. The endpoint answers a bare array.
func (c *Client) AllJobs(ctx context.Context) ([]*model.Job, error) {
	var jobs []*model.Job
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs/all-jobs", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// JobDetails fetches a single posting. The endpoint answers the bare object.
func (c *Client) JobDetails(ctx context.Context, jobID string) (*model.Job, error) {
	var job model.Job
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs/job-details/"+url.PathEscape(jobID), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// AddJob creates a posting owned by the signed-in viewer.
func (c *Client) AddJob(ctx context.Context, fields JobFields) (*model.Job, error) {
	var envelope struct {
		Data *model.Job `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/jobs/add-job", fields, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// UpdateJob replaces a posting's mutable fields.
func (c *Client) UpdateJob(ctx context.Context, jobID string, fields JobFields) (*model.Job, error) {
	var envelope struct {
		Data *model.Job `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/v1/jobs/update-job/"+url.PathEscape(jobID), fields, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// JobStats fetches the rolled-up view counts for a posting.
func (c *Client) JobStats(ctx context.Context, jobID string) (*model.JobViewSummary, error) {
	var envelope struct {
		Data *model.JobViewSummary `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs/job-stats/"+url.PathEscape(jobID), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// DeleteJob permanently removes a posting.
func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/jobs/delete-job/"+url.PathEscape(jobID), nil, nil)
}

// MyAddedJobs fetches the viewer's own postings. The endpoint answers
// {"success":true,"data":[...]} and 404 when the viewer has none; the
// 404 is empty-list semantics, not an error.
func (c *Client) MyAddedJobs(ctx context.Context, email string) ([]*model.Job, error) {
	var envelope struct {
		Data []*model.Job `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/jobs/myAddedJobs/"+url.PathEscape(email), nil, &envelope)
	if err != nil {
		if IsNotFound(err) {
			return []*model.Job{}, nil
		}
		return nil, err
	}
	return envelope.Data, nil
}

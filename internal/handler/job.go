package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/workhive/workhive/internal/analytics"
	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/handler/dto"
	"github.com/workhive/workhive/internal/middleware"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/service"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	svc    *service.JobService
	views  *analytics.Publisher
	logger *slog.Logger
}

// NewJobHandler creates a new JobHandler. views may be nil, in which
// case job-detail requests are not counted.
func NewJobHandler(svc *service.JobService, views *analytics.Publisher, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		svc:    svc,
		views:  views,
		logger: logger,
	}
}

// Recent handles GET /api/v1/jobs/recent-jobs.
func (h *JobHandler) Recent(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListRecentJobs(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if jobs == nil {
		jobs = []*model.Job{}
	}
	writeJSON(w, http.StatusOK, dto.JobsEnvelope{Jobs: jobs})
}

// ListAll handles GET /api/v1/jobs/all-jobs.
// Responds with a bare array, unlike the other list endpoints.
func (h *JobHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListJobs(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if jobs == nil {
		jobs = []*model.Job{}
	}
	writeJSON(w, http.StatusOK, jobs)
}

// Get handles GET /api/v1/jobs/job-details/{jobId}.
// Responds with the bare job object.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobId")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	job, err := h.svc.GetJob(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.recordView(r, job.ID)
	writeJSON(w, http.StatusOK, job)
}

// Stats handles GET /api/v1/jobs/job-stats/{jobId}.
func (h *JobHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobId")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	summary, err := h.svc.ViewSummary(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DataEnvelope{Data: summary})
}

// recordView publishes a fire-and-forget view event for a served
// job-detail request. Signed-in viewers are identified by their user ID
// so repeat visits count as one visitor even across networks; anonymous
// viewers fall back to the address-based hash.
func (h *JobHandler) recordView(r *http.Request, jobID string) {
	if h.views == nil {
		return
	}

	visitor := r.RemoteAddr
	if sess := auth.SessionFromContext(r.Context()); sess != nil {
		visitor = sess.UserID
	}

	now := time.Now().UTC()
	userAgent := analytics.TruncateUserAgent(r.UserAgent())
	h.views.PublishAsync(analytics.JobViewPayload{
		JobID:       jobID,
		Referrer:    analytics.SanitizeReferrer(r.Referer()),
		UserAgent:   userAgent,
		VisitorHash: analytics.GenerateVisitorHash(visitor, userAgent, now),
		CountryCode: analytics.ExtractCountryCode(r.Header.Get("CF-IPCountry")),
		ViewedAt:    now.UnixMilli(),
	})
}

// Create handles POST /api/v1/jobs/add-job.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	var req dto.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := validateJobFields(req.Title, req.Summary, req.CoverImage); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FIELDS", err.Error())
		return
	}

	job, err := h.svc.CreateJob(r.Context(), service.CreateJobInput{
		Title:      req.Title,
		PostedBy:   req.PostedBy,
		Category:   req.Category,
		Summary:    req.Summary,
		CoverImage: req.CoverImage,
		OwnerEmail: sess.Email,
		OwnerUID:   sess.UserID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_created",
		"job_id", job.ID,
		"category", job.Category,
	)

	writeJSON(w, http.StatusCreated, dto.SuccessEnvelope{Success: true, Data: job})
}

// Update handles PUT /api/v1/jobs/update-job/{jobId}.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	id := chi.URLParam(r, "jobId")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	var req dto.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := validateJobFields(req.Title, req.Summary, req.CoverImage); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FIELDS", err.Error())
		return
	}

	job, err := h.svc.UpdateJob(r.Context(), service.UpdateJobInput{
		ID:          id,
		Title:       req.Title,
		Category:    req.Category,
		Summary:     req.Summary,
		CoverImage:  req.CoverImage,
		ViewerEmail: sess.Email,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_updated", "job_id", job.ID)

	writeJSON(w, http.StatusOK, dto.SuccessEnvelope{Success: true, Data: job})
}

// Delete handles DELETE /api/v1/jobs/delete-job/{jobId}.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	id := chi.URLParam(r, "jobId")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	if err := h.svc.DeleteJob(r.Context(), id, sess.Email); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_deleted", "job_id", id)

	writeJSON(w, http.StatusOK, dto.SuccessEnvelope{Success: true})
}

// MyAdded handles GET /api/v1/jobs/myAddedJobs/{email}.
// An empty result is a 404; consumers treat that as an empty list.
func (h *JobHandler) MyAdded(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	email := chi.URLParam(r, "email")
	if !equalEmail(email, sess.Email) {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Cannot list another user's jobs")
		return
	}

	jobs, err := h.svc.ListJobsByOwner(r.Context(), sess.Email)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if len(jobs) == 0 {
		writeError(w, http.StatusNotFound, "NO_JOBS", "No jobs found for this user")
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessEnvelope{Success: true, Data: jobs})
}

// validateJobFields applies the request-boundary limits to job input.
func validateJobFields(title, summary, coverImage string) error {
	if err := middleware.ValidateTitle(title); err != nil {
		return err
	}
	if err := middleware.ValidateSummary(summary); err != nil {
		return err
	}
	return middleware.ValidateImageURL(coverImage)
}

// handleServiceError maps job service errors to HTTP responses.
func (h *JobHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		writeError(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found")
	case errors.Is(err, service.ErrMissingJobFields):
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Title, postedBy, category and summary are required")
	case errors.Is(err, service.ErrNotJobOwner):
		writeError(w, http.StatusForbidden, "NOT_OWNER", "Only the job owner may do this")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

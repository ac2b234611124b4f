package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/handler/dto"
	"github.com/workhive/workhive/internal/service"
)

// AcceptanceHandler handles HTTP requests for the accept-job lifecycle.
type AcceptanceHandler struct {
	svc    *service.AcceptanceService
	logger *slog.Logger
}

// NewAcceptanceHandler creates a new AcceptanceHandler.
func NewAcceptanceHandler(svc *service.AcceptanceService, logger *slog.Logger) *AcceptanceHandler {
	return &AcceptanceHandler{
		svc:    svc,
		logger: logger,
	}
}

// Check handles GET /api/v1/accepted-jobs/check-accepted/{jobId}/{email}.
func (h *AcceptanceHandler) Check(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	jobID := chi.URLParam(r, "jobId")
	email := chi.URLParam(r, "email")
	if jobID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}
	if !equalEmail(email, sess.Email) {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Cannot check another user's acceptance")
		return
	}

	accepted, err := h.svc.CheckAccepted(r.Context(), jobID, sess.Email)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AcceptedEnvelope{Accepted: accepted})
}

// Accept handles POST /api/v1/accepted-jobs/accept-job.
func (h *AcceptanceHandler) Accept(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	var req dto.AcceptJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.JobID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	acc, err := h.svc.Accept(r.Context(), service.AcceptInput{
		JobID:       req.JobID,
		ViewerEmail: sess.Email,
		DisplayName: sess.DisplayName,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_accepted",
		"acceptance_id", acc.ID,
		"job_id", acc.JobID,
	)

	writeJSON(w, http.StatusCreated, dto.DataEnvelope{Data: acc})
}

// MyAccepted handles GET /api/v1/accepted-jobs/my-accepted-jobs/{email}.
// An empty result is a 404; consumers treat that as an empty list.
func (h *AcceptanceHandler) MyAccepted(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	email := chi.URLParam(r, "email")
	if !equalEmail(email, sess.Email) {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Cannot list another user's accepted jobs")
		return
	}

	accs, err := h.svc.ListForViewer(r.Context(), sess.Email)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if len(accs) == 0 {
		writeError(w, http.StatusNotFound, "NO_ACCEPTED_JOBS", "No accepted jobs found for this user")
		return
	}

	writeJSON(w, http.StatusOK, dto.DataEnvelope{Data: accs})
}

// Remove handles DELETE /api/v1/accepted-jobs/remove-accepted-job/{id}.
// Both mark-done and cancel arrive here.
func (h *AcceptanceHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Acceptance ID is required")
		return
	}

	if err := h.svc.Remove(r.Context(), id, sess.Email); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("acceptance_removed", "acceptance_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps acceptance service errors to HTTP responses.
func (h *AcceptanceHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		writeError(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found")
	case errors.Is(err, service.ErrAcceptanceNotFound):
		writeError(w, http.StatusNotFound, "ACCEPTANCE_NOT_FOUND", "Acceptance not found")
	case errors.Is(err, service.ErrOwnJobAccept):
		writeError(w, http.StatusConflict, "OWN_JOB", "Cannot accept your own job")
	case errors.Is(err, service.ErrAlreadyAccepted):
		writeError(w, http.StatusConflict, "ALREADY_ACCEPTED", "Job already accepted")
	case errors.Is(err, service.ErrNotAcceptanceOwner):
		writeError(w, http.StatusForbidden, "NOT_OWNER", "Only the accepting user may do this")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

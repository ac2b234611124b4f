package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/handler/dto"
	"github.com/workhive/workhive/internal/middleware"
	"github.com/workhive/workhive/internal/service"
)

// ProfileHandler handles HTTP requests for user profiles.
type ProfileHandler struct {
	svc    *service.ProfileService
	logger *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		svc:    svc,
		logger: logger,
	}
}

// Get handles GET /api/v1/users/profile/{uidOrEmail}.
// Profiles are publicly readable; a user with no saved profile still
// resolves to an empty record.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "uidOrEmail")
	if key == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "User ID or email is required")
		return
	}

	p, err := h.svc.Get(r.Context(), key)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessEnvelope{Success: true, Data: p})
}

// Update handles PUT /api/v1/users/profile/{uidOrEmail}.
// The whole record is replaced; only the profile's owner may write it.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	key := chi.URLParam(r, "uidOrEmail")
	if key == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "User ID or email is required")
		return
	}
	if key != sess.UserID && !equalEmail(key, sess.Email) {
		writeError(w, http.StatusForbidden, "NOT_OWNER", "Only the profile owner may do this")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := middleware.ValidateImageURL(req.PhotoURL); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FIELDS", err.Error())
		return
	}
	if err := middleware.ValidateProfileFields(req.Bio, req.Skills); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FIELDS", err.Error())
		return
	}

	p, err := h.svc.Update(r.Context(), sess.UserID, service.UpdateProfileInput{
		UserID:      sess.UserID,
		Email:       sess.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Bio:         req.Bio,
		Skills:      req.Skills,
		Location:    req.Location,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("profile_updated", "user_id", p.UserID)

	writeJSON(w, http.StatusOK, dto.SuccessEnvelope{Success: true, Data: p})
}

// handleServiceError maps profile service errors to HTTP responses.
func (h *ProfileHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotProfileOwner):
		writeError(w, http.StatusForbidden, "NOT_OWNER", "Only the profile owner may do this")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

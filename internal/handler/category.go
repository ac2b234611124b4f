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
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/service"
)

// CategoryHandler handles HTTP requests for job categories.
type CategoryHandler struct {
	svc    *service.CategoryService
	logger *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		svc:    svc,
		logger: logger,
	}
}

// ListAll handles GET /api/v1/category/all-categories.
func (h *CategoryHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if cats == nil {
		cats = []*model.Category{}
	}
	writeJSON(w, http.StatusOK, dto.SuccessEnvelope{Success: true, Data: cats})
}

// ListByUser handles GET /api/v1/category/user-categories/{uid}.
func (h *CategoryHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	if uid == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "User ID is required")
		return
	}

	cats, err := h.svc.ListCategoriesByUser(r.Context(), uid)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if cats == nil {
		cats = []*model.Category{}
	}
	writeJSON(w, http.StatusOK, dto.SuccessEnvelope{Success: true, Data: cats})
}

// Create handles POST /api/v1/category/add-category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := middleware.ValidateTitle(req.Title); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FIELDS", err.Error())
		return
	}
	if err := middleware.ValidateImageURL(req.Image); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FIELDS", err.Error())
		return
	}

	cat, err := h.svc.CreateCategory(r.Context(), service.CreateCategoryInput{
		Title:  req.Title,
		Image:  req.Image,
		UserID: sess.UserID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("category_created",
		"category_id", cat.ID,
		"slug", cat.Slug,
	)

	writeJSON(w, http.StatusCreated, dto.SuccessEnvelope{Success: true, Data: cat})
}

// Delete handles DELETE /api/v1/category/delete-category/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := auth.MustSessionFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Category ID is required")
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), id, sess.UserID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("category_deleted", "category_id", id)

	writeJSON(w, http.StatusOK, dto.SuccessEnvelope{Success: true})
}

// handleServiceError maps category service errors to HTTP responses.
func (h *CategoryHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
	case errors.Is(err, service.ErrMissingCategoryTitle):
		writeError(w, http.StatusBadRequest, "MISSING_TITLE", "Category title is required")
	case errors.Is(err, service.ErrNotCategoryOwner):
		writeError(w, http.StatusForbidden, "NOT_OWNER", "Only the category creator may do this")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

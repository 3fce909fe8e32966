package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hfletcher/jobsite/internal/api/dto"
	"github.com/hfletcher/jobsite/internal/api/middleware"
	"github.com/hfletcher/jobsite/internal/domain/update"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/utils"
	"github.com/hfletcher/jobsite/internal/pkg/validator"
)

// UpdateHandler handles progress update endpoints nested under projects
type UpdateHandler struct {
	service   update.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewUpdateHandler creates a new progress update handler
func NewUpdateHandler(service update.Service, log *logger.Logger, val *validator.Validator) *UpdateHandler {
	return &UpdateHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Create posts a progress update with optional photos
// @Summary Post a progress update
// @Tags Updates
// @Accept json
// @Produce json
// @Param request body dto.CreateUpdateRequest true "Update content"
// @Success 201 {object} update.Update "Created update"
// @Security BearerAuth
// @Router /projects/{projectID}/updates [post]
func (h *UpdateHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.CreateUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	u := &update.Update{
		ProjectID: projectID,
		Title:     req.Title,
		Body:      req.Body,
	}
	for _, p := range req.Photos {
		u.Photos = append(u.Photos, update.Photo{URL: p.URL, Caption: p.Caption})
	}

	if _, err := h.service.Create(r.Context(), userID, u); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, u)
}

// Get retrieves an update with its photos
func (h *UpdateHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	updateID, err := pathID(r, "updateID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	u, err := h.service.GetByID(r.Context(), userID, projectID, updateID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, u)
}

// Delete deletes an update
func (h *UpdateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	updateID, err := pathID(r, "updateID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), userID, projectID, updateID); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Update deleted", nil)
}

// List retrieves updates of a project, newest first
func (h *UpdateHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	params := utils.ParsePaginationParams(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	updates, total, err := h.service.ListByProject(r.Context(), userID, projectID, params.PageSize, params.Offset)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(updates, params.Page, params.PageSize, total))
}

// AddPhoto attaches one photo to an existing update
func (h *UpdateHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	updateID, err := pathID(r, "updateID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.PhotoInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	photo, err := h.service.AddPhoto(r.Context(), userID, projectID, updateID, req.URL, req.Caption)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, photo)
}

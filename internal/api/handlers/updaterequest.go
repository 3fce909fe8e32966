package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hfletcher/jobsite/internal/api/dto"
	"github.com/hfletcher/jobsite/internal/api/middleware"
	"github.com/hfletcher/jobsite/internal/domain/updaterequest"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/utils"
	"github.com/hfletcher/jobsite/internal/pkg/validator"
)

// UpdateRequestHandler handles the contractor side of update requests
type UpdateRequestHandler struct {
	service   updaterequest.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewUpdateRequestHandler creates a new update request handler
func NewUpdateRequestHandler(service updaterequest.Service, log *logger.Logger, val *validator.Validator) *UpdateRequestHandler {
	return &UpdateRequestHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List retrieves update requests across the contractor's projects
// @Summary List update requests
// @Tags UpdateRequests
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse "Update requests"
// @Security BearerAuth
// @Router /update-requests [get]
func (h *UpdateRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	params := utils.ParsePaginationParams(r)
	status := r.URL.Query().Get("status")

	requests, total, err := h.service.ListForUser(r.Context(), userID, status, params.PageSize, params.Offset)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(requests, params.Page, params.PageSize, total))
}

// Get retrieves one update request
func (h *UpdateRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	id, err := pathID(r, "requestID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	req, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, req)
}

// SetStatus moves an update request to a new status
// @Summary Set update request status
// @Description Move a request to any known status; transitions are not ordered
// @Tags UpdateRequests
// @Accept json
// @Produce json
// @Param request body dto.SetRequestStatusRequest true "New status"
// @Success 200 {object} updaterequest.Request "Updated request"
// @Security BearerAuth
// @Router /update-requests/{requestID} [put]
func (h *UpdateRequestHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	id, err := pathID(r, "requestID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.SetRequestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	if err := h.service.SetStatus(r.Context(), userID, id, req.Status); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	updated, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, updated)
}

// SetReply sets the free-text reply on an update request
func (h *UpdateRequestHandler) SetReply(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	id, err := pathID(r, "requestID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.SetRequestReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	if err := h.service.SetReply(r.Context(), userID, id, req.Reply); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	updated, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, updated)
}

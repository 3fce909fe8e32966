package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hfletcher/jobsite/internal/api/dto"
	"github.com/hfletcher/jobsite/internal/api/middleware"
	"github.com/hfletcher/jobsite/internal/domain/client"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/utils"
	"github.com/hfletcher/jobsite/internal/pkg/validator"
)

// ClientHandler handles client CRUD endpoints
type ClientHandler struct {
	service   client.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewClientHandler creates a new client handler
func NewClientHandler(service client.Service, log *logger.Logger, val *validator.Validator) *ClientHandler {
	return &ClientHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Create creates a client
// @Summary Create a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body dto.CreateClientRequest true "Client details"
// @Success 201 {object} client.Client "Created client"
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	c := &client.Client{
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}

	if _, err := h.service.Create(r.Context(), c); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, c)
}

// Get retrieves a client
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	id, err := pathID(r, "clientID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	c, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, c)
}

// Update updates a client
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	id, err := pathID(r, "clientID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	c := &client.Client{
		ID:      id,
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}

	if err := h.service.Update(r.Context(), userID, c); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, c)
}

// Delete deletes a client
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	id, err := pathID(r, "clientID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Client deleted", nil)
}

// List retrieves clients with pagination
// @Summary List clients
// @Tags Clients
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse "Clients"
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	params := utils.ParsePaginationParams(r)

	clients, total, err := h.service.List(r.Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(clients, params.Page, params.PageSize, total))
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hfletcher/jobsite/internal/api/dto"
	"github.com/hfletcher/jobsite/internal/api/middleware"
	"github.com/hfletcher/jobsite/internal/auth"
	"github.com/hfletcher/jobsite/internal/config"
	"github.com/hfletcher/jobsite/internal/domain/updaterequest"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/utils"
	"github.com/hfletcher/jobsite/internal/pkg/validator"
	"github.com/hfletcher/jobsite/internal/services"
)

// PortalHandler handles the client portal endpoints. Everything here
// is scoped to the client id carried by the portal token.
type PortalHandler struct {
	portal    *services.PortalService
	requests  updaterequest.Service
	config    *config.Config
	logger    *logger.Logger
	validator *validator.Validator
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(
	portal *services.PortalService,
	requests updaterequest.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *PortalHandler {
	return &PortalHandler{
		portal:    portal,
		requests:  requests,
		config:    cfg,
		logger:    log,
		validator: val,
	}
}

// Login authenticates a portal user and issues a portal token
// @Summary Portal login
// @Tags Portal
// @Accept json
// @Produce json
// @Param request body dto.PortalLoginRequest true "Portal credentials"
// @Success 200 {object} dto.PortalAuthResponse "Authenticated"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /portal/login [post]
func (h *PortalHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.PortalLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	p, err := h.portal.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	token, err := auth.MintPortalToken(p.ID, p.ClientID, p.Email, h.config.Portal.JWTSecret, h.config.Portal.TokenExpiry)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to issue token", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.PortalAuthResponse{
		AccessToken: token,
		ClientID:    p.ClientID,
		Name:        p.Name,
	})
}

// Projects lists the projects visible to the portal user's client
func (h *PortalHandler) Projects(w http.ResponseWriter, r *http.Request) {
	clientID, _ := middleware.GetPortalClientID(r)

	projects, err := h.portal.ListProjects(r.Context(), clientID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, projects)
}

// Updates lists updates of one of the client's projects
func (h *PortalHandler) Updates(w http.ResponseWriter, r *http.Request) {
	clientID, _ := middleware.GetPortalClientID(r)
	params := utils.ParsePaginationParams(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	updates, total, err := h.portal.ListUpdates(r.Context(), clientID, projectID, params.PageSize, params.Offset)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(updates, params.Page, params.PageSize, total))
}

// CreateRequest files an update request against a project
// @Summary Ask for an update
// @Tags Portal
// @Accept json
// @Produce json
// @Param request body dto.CreateUpdateRequestRequest true "Question"
// @Success 201 {object} map[string]int64 "Created request id"
// @Router /portal/update-requests [post]
func (h *PortalHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	portalUserID, _ := middleware.GetPortalUserID(r)
	clientID, _ := middleware.GetPortalClientID(r)

	var req dto.CreateUpdateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	id, err := h.requests.Create(r.Context(), portalUserID, clientID, req.ProjectID, req.Question)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, map[string]int64{"id": id})
}

// MyRequests lists the portal user's own update requests
func (h *PortalHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	portalUserID, _ := middleware.GetPortalUserID(r)

	requests, err := h.requests.ListByPortalUser(r.Context(), portalUserID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, requests)
}

// Invite creates a portal login for one of the contractor's clients.
// This is a contractor-side endpoint but lives here with the rest of
// the portal lifecycle.
func (h *PortalHandler) Invite(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.PortalInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	p, err := h.portal.Invite(r.Context(), userID, req.ClientID, req.Email, req.Name, req.Password)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, p)
}

// Logins lists the portal logins of a client
func (h *PortalHandler) Logins(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	clientID, err := pathID(r, "clientID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	logins, err := h.portal.ListLogins(r.Context(), userID, clientID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, logins)
}

// Revoke deletes a portal login
func (h *PortalHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	clientID, err := pathID(r, "clientID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	portalUserID, err := pathID(r, "portalUserID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := h.portal.Revoke(r.Context(), userID, clientID, portalUserID); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Portal login revoked", nil)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/hfletcher/jobsite/internal/api/dto"
	"github.com/hfletcher/jobsite/internal/api/middleware"
	"github.com/hfletcher/jobsite/internal/auth"
	"github.com/hfletcher/jobsite/internal/config"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/utils"
	"github.com/hfletcher/jobsite/internal/services"
)

// stateTTL bounds how long an OAuth consent round trip may take
const stateTTL = 10 * time.Minute

// AccountingHandler handles the accounting platform connection endpoints
type AccountingHandler struct {
	service *services.AccountingService
	config  *config.Config
	logger  *logger.Logger
}

// NewAccountingHandler creates a new accounting handler
func NewAccountingHandler(service *services.AccountingService, cfg *config.Config, log *logger.Logger) *AccountingHandler {
	return &AccountingHandler{
		service: service,
		config:  cfg,
		logger:  log,
	}
}

// Connect returns the consent URL to start the OAuth flow. The state
// parameter is a short-lived signed token carrying the user id, so the
// unauthenticated callback can tie the code back to an account.
// @Summary Start accounting connection
// @Tags Accounting
// @Produce json
// @Success 200 {object} map[string]string "Consent URL"
// @Security BearerAuth
// @Router /accounting/connect [get]
func (h *AccountingHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	email, _ := middleware.GetUserEmail(r)

	pair, err := auth.MintTokens(userID, email, h.config.Auth.JWTSecret, stateTTL, stateTTL)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to mint state token", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"url": h.service.ConnectURL(pair.AccessToken),
	})
}

// Callback completes the OAuth flow. The accounting platform redirects
// here with code, state and the company (realm) id.
// @Summary OAuth callback
// @Tags Accounting
// @Produce json
// @Success 200 {object} utils.SuccessResponse "Connected"
// @Failure 401 {object} utils.ErrorResponse "Invalid state"
// @Router /accounting/callback [get]
func (h *AccountingHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := q.Get("state")

	claims, err := auth.ParseClaims(state, h.config.Auth.JWTSecret)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid or expired state"))
		return
	}

	if err := h.service.CompleteConnect(r.Context(), claims.UserID, q.Get("code"), q.Get("realmId")); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Accounting platform connected", nil)
}

// Status reports the connection state
func (h *AccountingHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	status, err := h.service.Status(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	out := dto.AccountingStatusDTO{
		Connected: status.Connected,
		RealmID:   status.RealmID,
	}
	if status.Connected {
		out.ExpiresAt = &status.ExpiresAt
	}

	utils.WriteSuccess(w, http.StatusOK, out)
}

// Disconnect drops the connection
func (h *AccountingHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	if err := h.service.Disconnect(r.Context(), userID); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Accounting platform disconnected", nil)
}

// SyncClient pushes a client to the accounting platform
// @Summary Push client to accounting
// @Tags Accounting
// @Produce json
// @Success 200 {object} dto.AccountingSyncResponse "External id"
// @Failure 409 {object} utils.ErrorResponse "Not connected"
// @Security BearerAuth
// @Router /accounting/sync/clients/{clientID} [post]
func (h *AccountingHandler) SyncClient(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	clientID, err := pathID(r, "clientID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	externalID, err := h.service.SyncCustomer(r.Context(), userID, clientID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.AccountingSyncResponse{ExternalID: externalID})
}

// SyncProject pushes a project as an estimate
func (h *AccountingHandler) SyncProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	estimateID, err := h.service.SyncEstimate(r.Context(), userID, projectID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.AccountingSyncResponse{ExternalID: estimateID})
}

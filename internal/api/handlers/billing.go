package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/hfletcher/jobsite/internal/api/dto"
	"github.com/hfletcher/jobsite/internal/api/middleware"
	"github.com/hfletcher/jobsite/internal/config"
	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/payments"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/utils"
	"github.com/hfletcher/jobsite/internal/pkg/validator"
	"github.com/hfletcher/jobsite/internal/services"
)

// maxWebhookBody caps the webhook payload read. Processor events are
// small; anything larger is hostile.
const maxWebhookBody = 1 << 20

// BillingHandler handles subscription and webhook endpoints
type BillingHandler struct {
	billing     *services.BillingService
	userService user.Service
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(
	billing *services.BillingService,
	userService user.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *BillingHandler {
	return &BillingHandler{
		billing:     billing,
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// Plans lists the subscribable plans
// @Summary List available plans
// @Tags Billing
// @Produce json
// @Success 200 {array} dto.PlanDTO "Available plans"
// @Security BearerAuth
// @Router /billing/plans [get]
func (h *BillingHandler) Plans(w http.ResponseWriter, r *http.Request) {
	plans := []dto.PlanDTO{
		{
			Name:        user.PlanTypeCore,
			Description: "Projects, tasks, budgets and the client portal",
			PriceID:     h.config.Processor.CorePriceID,
		},
		{
			Name:        user.PlanTypePro,
			Description: "Everything in core plus accounting sync and PDF reports",
			PriceID:     h.config.Processor.ProPriceID,
		},
	}
	utils.WriteSuccess(w, http.StatusOK, plans)
}

// Subscribe starts a paid subscription
// @Summary Subscribe to a plan
// @Description Start a core or pro subscription; returns the payment confirmation token
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.SubscribeRequest true "Plan selection"
// @Success 200 {object} services.SubscribeResult "Subscription created"
// @Failure 400 {object} utils.ErrorResponse "Invalid plan or missing email"
// @Security BearerAuth
// @Router /billing/subscribe [post]
func (h *BillingHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	result, err := h.billing.Subscribe(r.Context(), userID, req.Plan)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, result)
}

// Info returns the contractor's billing summary including entitlement
// @Summary Billing info
// @Tags Billing
// @Produce json
// @Success 200 {object} dto.BillingInfoDTO "Billing information"
// @Security BearerAuth
// @Router /billing/info [get]
func (h *BillingHandler) Info(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	ent := user.Evaluate(time.Now(), u)

	utils.WriteSuccess(w, http.StatusOK, dto.BillingInfoDTO{
		PlanType:           u.PlanType,
		SetupPaid:          u.SetupPaid,
		SubscriptionActive: u.SubscriptionActive,
		Entitlement:        dto.EntitlementToDTO(ent),
	})
}

// Entitlement returns the derived access state only
// @Summary Current entitlement
// @Tags Billing
// @Produce json
// @Success 200 {object} dto.EntitlementDTO "Entitlement"
// @Security BearerAuth
// @Router /billing/entitlement [get]
func (h *BillingHandler) Entitlement(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	ent, err := h.userService.Entitlement(r.Context(), userID, time.Now())
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.EntitlementToDTO(ent))
}

// Webhook receives processor events. The signature is verified against
// the raw body before any parsing. A 2xx tells the processor to stop
// redelivering; handler errors for transient failures return 5xx so
// the event is retried.
// @Summary Processor webhook
// @Tags Billing
// @Accept json
// @Success 200 {object} utils.SuccessResponse "Event handled"
// @Failure 401 {object} utils.ErrorResponse "Bad signature"
// @Router /billing/webhook [post]
func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Could not read request body"))
		return
	}

	event, err := payments.ParseEvent(
		h.config.Processor.WebhookSecret,
		body,
		r.Header.Get(payments.SignatureHeader),
	)
	if err != nil {
		h.logger.WithError(err).Warn("Webhook rejected")
		utils.WriteError(w, errors.Unauthorized("Invalid webhook signature"))
		return
	}

	if err := h.billing.HandleEvent(r.Context(), event); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{"received": event.ID})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hfletcher/jobsite/internal/api/dto"
	"github.com/hfletcher/jobsite/internal/api/middleware"
	"github.com/hfletcher/jobsite/internal/domain/budget"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/utils"
	"github.com/hfletcher/jobsite/internal/pkg/validator"
)

// BudgetHandler handles budget item endpoints nested under projects
type BudgetHandler struct {
	service   budget.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(service budget.Service, log *logger.Logger, val *validator.Validator) *BudgetHandler {
	return &BudgetHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

func (h *BudgetHandler) decodeItem(w http.ResponseWriter, r *http.Request) (*dto.BudgetItemRequest, bool) {
	var req dto.BudgetItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return nil, false
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return nil, false
	}
	return &req, true
}

// Create creates a budget item
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	item := &budget.Item{
		ProjectID:      projectID,
		Category:       req.Category,
		Description:    req.Description,
		EstimatedCents: req.EstimatedCents,
		ActualCents:    req.ActualCents,
	}

	if _, err := h.service.Create(r.Context(), userID, item); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, item)
}

// Update updates a budget item
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	item := &budget.Item{
		ID:             itemID,
		ProjectID:      projectID,
		Category:       req.Category,
		Description:    req.Description,
		EstimatedCents: req.EstimatedCents,
		ActualCents:    req.ActualCents,
	}

	if err := h.service.Update(r.Context(), userID, item); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, item)
}

// Delete deletes a budget item
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), userID, projectID, itemID); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Budget item deleted", nil)
}

// List retrieves budget items with totals
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	items, totals, err := h.service.ListByProject(r.Context(), userID, projectID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"items":  items,
		"totals": totals,
	})
}

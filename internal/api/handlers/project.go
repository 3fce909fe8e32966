package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hfletcher/jobsite/internal/api/dto"
	"github.com/hfletcher/jobsite/internal/api/middleware"
	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/utils"
	"github.com/hfletcher/jobsite/internal/pkg/validator"
	"github.com/hfletcher/jobsite/internal/services"
)

// ProjectHandler handles project CRUD and report endpoints
type ProjectHandler struct {
	service   project.Service
	reports   *services.ReportService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(
	service project.Service,
	reports *services.ReportService,
	log *logger.Logger,
	val *validator.Validator,
) *ProjectHandler {
	return &ProjectHandler{
		service:   service,
		reports:   reports,
		logger:    log,
		validator: val,
	}
}

// Create creates a project
// @Summary Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} project.Project "Created project"
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	p := &project.Project{
		UserID:      userID,
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	if _, err := h.service.Create(r.Context(), p); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, p)
}

// Get retrieves a project
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	id, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	p, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, p)
}

// Update updates a project
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	id, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	p := &project.Project{
		ID:          id,
		UserID:      userID,
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	if err := h.service.Update(r.Context(), userID, p); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, p)
}

// Delete deletes a project
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	id, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Project deleted", nil)
}

// List retrieves projects with filters and pagination
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param client_id query int false "Filter by client"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse "Projects"
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)
	params := utils.ParsePaginationParams(r)

	var filter project.Filter
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid client_id"))
			return
		}
		filter.ClientID = id
	}
	filter.Status = r.URL.Query().Get("status")

	projects, total, err := h.service.List(r.Context(), userID, filter, params.PageSize, params.Offset)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(projects, params.Page, params.PageSize, total))
}

// Report streams the project's PDF progress report
// @Summary Download progress report
// @Tags Projects
// @Produce application/pdf
// @Success 200 {file} binary "PDF report"
// @Security BearerAuth
// @Router /projects/{projectID}/report [get]
func (h *ProjectHandler) Report(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	id, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	pdf, err := h.reports.ProjectReport(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=project-%d-report.pdf", id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

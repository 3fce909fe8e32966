package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hfletcher/jobsite/internal/api/dto"
	"github.com/hfletcher/jobsite/internal/api/middleware"
	"github.com/hfletcher/jobsite/internal/domain/task"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/utils"
	"github.com/hfletcher/jobsite/internal/pkg/validator"
)

// TaskHandler handles task endpoints nested under projects
type TaskHandler struct {
	service   task.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(service task.Service, log *logger.Logger, val *validator.Validator) *TaskHandler {
	return &TaskHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Create creates a task on a project
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	t := &task.Task{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}

	if _, err := h.service.Create(r.Context(), userID, t); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, t)
}

// Update updates a task
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	t := &task.Task{
		ID:          taskID,
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}

	if err := h.service.Update(r.Context(), userID, t); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, t)
}

// Delete deletes a task
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), userID, projectID, taskID); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Task deleted", nil)
}

// List retrieves the tasks of a project
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	projectID, err := pathID(r, "projectID")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	tasks, err := h.service.ListByProject(r.Context(), userID, projectID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, tasks)
}

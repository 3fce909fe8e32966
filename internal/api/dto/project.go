package dto

import "time"

// CreateClientRequest represents a client creation request
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Address string `json:"address,omitempty" validate:"omitempty,max=500"`
	Notes   string `json:"notes,omitempty"`
}

// UpdateClientRequest represents a client update request
type UpdateClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Address string `json:"address,omitempty" validate:"omitempty,max=500"`
	Notes   string `json:"notes,omitempty"`
}

// CreateProjectRequest represents a project creation request
type CreateProjectRequest struct {
	ClientID    int64      `json:"client_id" validate:"required"`
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	Address     string     `json:"address,omitempty" validate:"omitempty,max=500"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=planning active on_hold completed archived"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// UpdateProjectRequest represents a project update request
type UpdateProjectRequest struct {
	ClientID    int64      `json:"client_id" validate:"required"`
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	Address     string     `json:"address,omitempty" validate:"omitempty,max=500"`
	Status      string     `json:"status" validate:"required,oneof=planning active on_hold completed archived"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// CreateTaskRequest represents a task creation request
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress done"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents a task update request
type UpdateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status" validate:"required,oneof=todo in_progress done"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// BudgetItemRequest represents a budget item create/update request
type BudgetItemRequest struct {
	Category       string `json:"category" validate:"required,oneof=labor materials permits subcontractors other"`
	Description    string `json:"description,omitempty" validate:"omitempty,max=500"`
	EstimatedCents int64  `json:"estimated_cents" validate:"min=0"`
	ActualCents    int64  `json:"actual_cents" validate:"min=0"`
}

// CreateUpdateRequest represents a progress update creation request
type CreateUpdateRequest struct {
	Title  string       `json:"title" validate:"required,max=200"`
	Body   string       `json:"body,omitempty"`
	Photos []PhotoInput `json:"photos,omitempty" validate:"dive"`
}

// PhotoInput is one photo attached to an update
type PhotoInput struct {
	URL     string `json:"url" validate:"required,url"`
	Caption string `json:"caption,omitempty" validate:"omitempty,max=300"`
}

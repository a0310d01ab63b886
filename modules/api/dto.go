package api

import (
	"time"

	domain "github.com/example/task-management/domain/task"
)

// CreateTaskRequest is the HTTP request for creating a task.
type CreateTaskRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description *string         `json:"description" validate:"omitempty,max=1000"`
	Status      domain.Status   `json:"status" validate:"omitempty,oneof=New InProgress Completed"`
	Priority    domain.Priority `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	DueDate     *time.Time      `json:"due_date"`
}

func (r CreateTaskRequest) toDraft() domain.Draft {
	return domain.Draft{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
	}
}

// UpdateTaskRequest is the HTTP request for updating a task.
// Omitted fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Status      *domain.Status   `json:"status" validate:"omitempty,oneof=New InProgress Completed"`
	Priority    *domain.Priority `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	DueDate     *time.Time       `json:"due_date"`
}

func (r UpdateTaskRequest) toPatch() domain.Patch {
	return domain.Patch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
	}
}

// TaskResponse is the HTTP response for a single task.
type TaskResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

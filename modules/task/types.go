package task

import (
	"context"

	domain "github.com/example/task-management/domain/task"
)

// Failure carries a classified service failure across the request-reply boundary.
type Failure struct {
	Error     string      `json:"error,omitempty"`
	ErrorKind domain.Kind `json:"error_kind,omitempty"`
}

func failureOf(err *domain.Error) Failure {
	return Failure{Error: err.Message, ErrorKind: err.Kind}
}

// Err rebuilds the *domain.Error, or returns nil when the call succeeded.
func (f Failure) Err() error {
	if f.Error == "" && f.ErrorKind == "" {
		return nil
	}
	return domain.NewError(f.ErrorKind, f.Error)
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	domain.Draft
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID uint `json:"task_id"`
}

// UpdateTaskRequest is the request for updating a task.
type UpdateTaskRequest struct {
	TaskID uint `json:"task_id"`
	domain.Patch
}

// UpdateTaskResponse is the response for updating a task.
type UpdateTaskResponse struct {
	Updated bool `json:"updated"`
	Failure
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID uint `json:"task_id"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
	Failure
}

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct{}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []*domain.Task `json:"tasks"`
	Total int            `json:"total"`
	Failure
}

// TaskResponse is the response for a single task.
type TaskResponse struct {
	Task *domain.Task `json:"task,omitempty"`
	Failure
}

// TaskPort defines the task operations available to driving adapters such
// as the HTTP API. Domain failures are returned as *domain.Error.
type TaskPort interface {
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	GetTask(ctx context.Context, id uint) (*domain.Task, error)
	CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error)
	UpdateTask(ctx context.Context, id uint, patch domain.Patch) error
	DeleteTask(ctx context.Context, id uint) error
}

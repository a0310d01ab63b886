package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-management/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TaskPort interface.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// ListTasks lists all tasks via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	req := ListTasksRequest{}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-tasks",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-tasks service call failed: %w", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if resp.Tasks == nil {
		return []*domain.Task{}, nil
	}
	return resp.Tasks, nil
}

// GetTask retrieves a task by ID via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, id uint) (*domain.Task, error) {
	req := GetTaskRequest{TaskID: id}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-task service call failed: %w", err)
	}
	return taskOrErr(resp)
}

// CreateTask creates a new task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	req := CreateTaskRequest{Draft: draft}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("create-task service call failed: %w", err)
	}
	return taskOrErr(resp)
}

// UpdateTask applies a merge-patch via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, id uint, patch domain.Patch) error {
	req := UpdateTaskRequest{TaskID: id, Patch: patch}
	var resp UpdateTaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"update-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("update-task service call failed: %w", err)
	}
	if err := resp.Err(); err != nil {
		return err
	}
	if !resp.Updated {
		return fmt.Errorf("task not updated: %d", id)
	}
	return nil
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, id uint) error {
	req := DeleteTaskRequest{TaskID: id}
	var resp DeleteTaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("delete-task service call failed: %w", err)
	}
	if err := resp.Err(); err != nil {
		return err
	}
	if !resp.Deleted {
		return fmt.Errorf("task not deleted: %d", id)
	}
	return nil
}

func taskOrErr(resp TaskResponse) (*domain.Task, error) {
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if resp.Task == nil {
		return nil, fmt.Errorf("empty task response")
	}
	return resp.Task, nil
}

package task

import (
	"context"
	"time"

	domain "github.com/example/task-management/domain/task"
	"github.com/example/task-management/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	res := m.service.List(ctx)
	if !res.Success() {
		m.logFailure("list-tasks", 0, res.Failure())
		return ListTasksResponse{Tasks: []*domain.Task{}, Failure: failureOf(res.Failure())}, nil
	}

	tasks := res.Value()
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	res := m.service.Get(ctx, req.TaskID)
	if !res.Success() {
		m.logFailure("get-task", req.TaskID, res.Failure())
		return TaskResponse{Failure: failureOf(res.Failure())}, nil
	}
	return TaskResponse{Task: res.Value()}, nil
}

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	res := m.service.Create(ctx, req.Draft)
	if !res.Success() {
		m.logFailure("create-task", 0, res.Failure())
		return TaskResponse{Failure: failureOf(res.Failure())}, nil
	}

	created := res.Value()
	m.logger.Info("Task created", "task_id", created.ID, "title", created.Title)

	m.publish("TaskCreated", created.ID, func() error {
		return events.TaskCreatedV1.Publish(m.eventBus, events.TaskCreatedEvent{
			EventID:   uuid.NewString(),
			TaskID:    created.ID,
			Title:     created.Title,
			Status:    string(created.Status),
			Priority:  string(created.Priority),
			CreatedAt: created.CreatedAt,
		}, nil)
	})

	return TaskResponse{Task: created}, nil
}

// updateTask handles the update-task service request.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (UpdateTaskResponse, error) {
	res := m.service.Update(ctx, req.TaskID, req.Patch)
	if !res.Success() {
		m.logFailure("update-task", req.TaskID, res.Failure())
		return UpdateTaskResponse{Failure: failureOf(res.Failure())}, nil
	}

	fields := patchedFields(req.Patch)
	m.logger.Info("Task updated", "task_id", req.TaskID, "fields", fields)

	m.publish("TaskUpdated", req.TaskID, func() error {
		return events.TaskUpdatedV1.Publish(m.eventBus, events.TaskUpdatedEvent{
			EventID:   uuid.NewString(),
			TaskID:    req.TaskID,
			Fields:    fields,
			UpdatedAt: time.Now().UTC(),
		}, nil)
	})

	return UpdateTaskResponse{Updated: res.Value()}, nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	res := m.service.Delete(ctx, req.TaskID)
	if !res.Success() {
		m.logFailure("delete-task", req.TaskID, res.Failure())
		return DeleteTaskResponse{Failure: failureOf(res.Failure())}, nil
	}

	m.logger.Info("Task deleted", "task_id", req.TaskID)

	m.publish("TaskDeleted", req.TaskID, func() error {
		return events.TaskDeletedV1.Publish(m.eventBus, events.TaskDeletedEvent{
			EventID:   uuid.NewString(),
			TaskID:    req.TaskID,
			DeletedAt: time.Now().UTC(),
		}, nil)
	})

	return DeleteTaskResponse{Deleted: res.Value()}, nil
}

// publish sends an event if an event bus is wired. Failures are logged only.
func (m *TaskModule) publish(event string, taskID uint, send func() error) {
	if m.eventBus == nil {
		return
	}
	if err := send(); err != nil {
		m.logger.Warn("Failed to publish event", "event", event, "task_id", taskID, "error", err)
	}
}

func (m *TaskModule) logFailure(service string, taskID uint, failure *domain.Error) {
	if failure.Kind == domain.KindStorage {
		m.logger.Error("Task operation failed", "service", service, "task_id", taskID, "error", failure)
		return
	}
	m.logger.Debug("Task operation rejected", "service", service, "task_id", taskID, "kind", failure.Kind, "reason", failure.Message)
}

// patchedFields lists the JSON names of the fields present in patch.
func patchedFields(patch domain.Patch) []string {
	fields := make([]string, 0, 5)
	if patch.Title != nil {
		fields = append(fields, "title")
	}
	if patch.Description != nil {
		fields = append(fields, "description")
	}
	if patch.Status != nil {
		fields = append(fields, "status")
	}
	if patch.Priority != nil {
		fields = append(fields, "priority")
	}
	if patch.DueDate != nil {
		fields = append(fields, "due_date")
	}
	return fields
}

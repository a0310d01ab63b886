package notification

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/task-management/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Counts is a snapshot of the task events seen since start.
type Counts struct {
	Created uint64 `json:"created"`
	Updated uint64 `json:"updated"`
	Deleted uint64 `json:"deleted"`
}

// NotificationModule handles notifications as a driven adapter.
// It logs task lifecycle events and keeps no history beyond counters.
type NotificationModule struct {
	created   atomic.Uint64
	updated   atomic.Uint64
	deleted   atomic.Uint64
	lastEvent atomic.Int64
	logger    types.Logger
}

var (
	_ mono.Module                = (*NotificationModule)(nil)
	_ mono.EventConsumerModule   = (*NotificationModule)(nil)
	_ mono.HealthCheckableModule = (*NotificationModule)(nil)
)

func NewModule(logger types.Logger) *NotificationModule {
	return &NotificationModule{logger: logger}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", "TaskCreated, TaskUpdated, TaskDeleted")
	return nil
}

func (m *NotificationModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.created.Add(1)
	m.touch()
	m.logger.Info("Task created",
		"event_id", event.EventID,
		"task_id", event.TaskID,
		"title", event.Title,
		"priority", event.Priority)
	return nil
}

func (m *NotificationModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.updated.Add(1)
	m.touch()
	m.logger.Info("Task updated",
		"event_id", event.EventID,
		"task_id", event.TaskID,
		"fields", event.Fields)
	return nil
}

func (m *NotificationModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.deleted.Add(1)
	m.touch()
	m.logger.Info("Task deleted",
		"event_id", event.EventID,
		"task_id", event.TaskID)
	return nil
}

func (m *NotificationModule) touch() {
	m.lastEvent.Store(time.Now().UnixNano())
}

// Counts returns how many events of each type were handled.
func (m *NotificationModule) Counts() Counts {
	return Counts{
		Created: m.created.Load(),
		Updated: m.updated.Load(),
		Deleted: m.deleted.Load(),
	}
}

func (m *NotificationModule) Health(_ context.Context) mono.HealthStatus {
	c := m.Counts()
	details := map[string]any{
		"task_created": c.Created,
		"task_updated": c.Updated,
		"task_deleted": c.Deleted,
	}
	if last := m.lastEvent.Load(); last != 0 {
		details["last_event_at"] = time.Unix(0, last).UTC().Format(time.RFC3339)
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "listening for task events",
		Details: details,
	}
}

func (m *NotificationModule) Start(_ context.Context) error {
	m.logger.Info("Notification module started - listening for task events")
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	m.logger.Info("Notification module stopped")
	return nil
}

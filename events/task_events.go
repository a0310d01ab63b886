package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TaskCreatedEvent is emitted when a new task is created.
type TaskCreatedEvent struct {
	EventID   string    `json:"event_id"`
	TaskID    uint      `json:"task_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.task.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"task", "TaskCreated", "v1",
)

// TaskUpdatedEvent is emitted after a merge-patch update is persisted.
type TaskUpdatedEvent struct {
	EventID   string    `json:"event_id"`
	TaskID    uint      `json:"task_id"`
	Fields    []string  `json:"fields"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskUpdatedV1 is the typed event definition for task updates.
// Subject: events.task.v1.task-updated
var TaskUpdatedV1 = helper.EventDefinition[TaskUpdatedEvent](
	"task", "TaskUpdated", "v1",
)

// TaskDeletedEvent is emitted when a task is deleted.
type TaskDeletedEvent struct {
	EventID   string    `json:"event_id"`
	TaskID    uint      `json:"task_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TaskDeletedV1 is the typed event definition for task deletion.
// Subject: events.task.v1.task-deleted
var TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
	"task", "TaskDeleted", "v1",
)

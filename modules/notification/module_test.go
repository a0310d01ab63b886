package notification

import (
	"context"
	"testing"

	"github.com/example/task-management/events"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)          {}
func (m *mockLogger) Info(msg string, args ...any)           {}
func (m *mockLogger) Warn(msg string, args ...any)           {}
func (m *mockLogger) Error(msg string, args ...any)          {}
func (m *mockLogger) With(args ...any) types.Logger          { return m }
func (m *mockLogger) WithError(err error) types.Logger       { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

func TestNotificationModule_CountsEvents(t *testing.T) {
	m := NewModule(&mockLogger{})
	ctx := context.Background()

	health := m.Health(ctx)
	assert.True(t, health.Healthy)
	assert.NotContains(t, health.Details, "last_event_at")

	require.NoError(t, m.handleTaskCreated(ctx, events.TaskCreatedEvent{TaskID: 1, Title: "a"}, nil))
	require.NoError(t, m.handleTaskCreated(ctx, events.TaskCreatedEvent{TaskID: 2, Title: "b"}, nil))
	require.NoError(t, m.handleTaskUpdated(ctx, events.TaskUpdatedEvent{TaskID: 1, Fields: []string{"title"}}, nil))
	require.NoError(t, m.handleTaskDeleted(ctx, events.TaskDeletedEvent{TaskID: 2}, nil))

	assert.Equal(t, Counts{Created: 2, Updated: 1, Deleted: 1}, m.Counts())

	health = m.Health(ctx)
	assert.Equal(t, uint64(2), health.Details["task_created"])
	assert.Contains(t, health.Details, "last_event_at")
}

func TestNotificationModule_Name(t *testing.T) {
	assert.Equal(t, "notification", NewModule(&mockLogger{}).Name())
}

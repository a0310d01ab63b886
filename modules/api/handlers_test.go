package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/task-management/config"
	domain "github.com/example/task-management/domain/task"
	"github.com/example/task-management/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
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

// fakePort is an in-memory task.TaskPort.
type fakePort struct {
	tasks     map[uint]*domain.Task
	nextID    uint
	err       error
	lastPatch domain.Patch
	lastDraft domain.Draft
}

var _ task.TaskPort = (*fakePort)(nil)

func newFakePort() *fakePort {
	return &fakePort{tasks: make(map[uint]*domain.Task), nextID: 1}
}

func (p *fakePort) ListTasks(_ context.Context) ([]*domain.Task, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([]*domain.Task, 0, len(p.tasks))
	for id := uint(1); id < p.nextID; id++ {
		if t, ok := p.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (p *fakePort) GetTask(_ context.Context, id uint) (*domain.Task, error) {
	if p.err != nil {
		return nil, p.err
	}
	t, ok := p.tasks[id]
	if !ok {
		return nil, domain.NotFoundError(id)
	}
	return t, nil
}

func (p *fakePort) CreateTask(_ context.Context, draft domain.Draft) (*domain.Task, error) {
	p.lastDraft = draft
	if p.err != nil {
		return nil, p.err
	}
	if draft.DueDate != nil && draft.DueDate.Before(time.Now().AddDate(0, 0, -1)) {
		return nil, domain.ValidationError(task.MsgDueDateInPast)
	}
	now := time.Now().UTC()
	t := &domain.Task{
		ID:          p.nextID,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      domain.StatusNew,
		Priority:    domain.PriorityMedium,
		DueDate:     draft.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.tasks[t.ID] = t
	p.nextID++
	return t, nil
}

func (p *fakePort) UpdateTask(_ context.Context, id uint, patch domain.Patch) error {
	p.lastPatch = patch
	if p.err != nil {
		return p.err
	}
	if _, ok := p.tasks[id]; !ok {
		return domain.NotFoundError(id)
	}
	if patch.DueDate != nil && patch.DueDate.Before(time.Now().AddDate(0, 0, -1)) {
		return domain.ValidationError(task.MsgDueDateInPast)
	}
	return nil
}

func (p *fakePort) DeleteTask(_ context.Context, id uint) error {
	if p.err != nil {
		return p.err
	}
	if _, ok := p.tasks[id]; !ok {
		return domain.NotFoundError(id)
	}
	delete(p.tasks, id)
	return nil
}

type staticHealth mono.HealthStatus

func (h staticHealth) Health(context.Context) mono.HealthStatus { return mono.HealthStatus(h) }

func setupTestApp(t *testing.T, port *fakePort) (*APIModule, *fiber.App) {
	t.Helper()
	m := NewModule(config.HTTPConfig{Port: 3000, CORSAllowedOrigins: "*"}, &mockLogger{})
	m.taskPort = port
	return m, m.newApp()
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestCreateTask(t *testing.T) {
	port := newFakePort()
	_, app := setupTestApp(t, port)

	resp := doRequest(t, app, http.MethodPost, "/tasks", `{"title":"Write report","description":"Q3 numbers","priority":"High"}`)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/tasks/1", resp.Header.Get("Location"))

	body := decodeBody[TaskResponse](t, resp)
	assert.Equal(t, uint(1), body.ID)
	assert.Equal(t, "Write report", body.Title)
	require.NotNil(t, body.Description)
	assert.Equal(t, "Q3 numbers", *body.Description)
	assert.Equal(t, domain.PriorityHigh, port.lastDraft.Priority)
}

func TestCreateTask_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed json", `{"title":`, "Invalid request body"},
		{"missing title", `{"description":"no title"}`, task.MsgTitleRequired},
		{"description too long", `{"title":"x","description":"` + strings.Repeat("a", 1001) + `"}`, task.MsgDescriptionTooLong},
		{"unknown status", `{"title":"x","status":"Archived"}`, task.MsgInvalidStatus},
		{"unknown priority", `{"title":"x","priority":"Urgent"}`, task.MsgInvalidPriority},
		{"past due date", `{"title":"x","due_date":"2001-01-01T00:00:00Z"}`, task.MsgDueDateInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, app := setupTestApp(t, newFakePort())

			resp := doRequest(t, app, http.MethodPost, "/tasks", tt.body)

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			body := decodeBody[ErrorResponse](t, resp)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestGetTask(t *testing.T) {
	port := newFakePort()
	_, app := setupTestApp(t, port)
	_, err := port.CreateTask(context.Background(), domain.Draft{Title: "Existing"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"existing", "/tasks/1", fiber.StatusOK},
		{"missing", "/tasks/99", fiber.StatusNotFound},
		{"non numeric", "/tasks/abc", fiber.StatusBadRequest},
		{"zero", "/tasks/0", fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	resp := doRequest(t, app, http.MethodGet, "/tasks/99", "")
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, "not_found", body.Error)
	assert.Contains(t, body.Message, "not found")
}

func TestListTasks(t *testing.T) {
	port := newFakePort()
	_, app := setupTestApp(t, port)

	resp := doRequest(t, app, http.MethodGet, "/tasks", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]TaskResponse](t, resp))

	for _, title := range []string{"One", "Two"} {
		_, err := port.CreateTask(context.Background(), domain.Draft{Title: title})
		require.NoError(t, err)
	}

	resp = doRequest(t, app, http.MethodGet, "/tasks", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	tasks := decodeBody[[]TaskResponse](t, resp)
	require.Len(t, tasks, 2)
	assert.Equal(t, "One", tasks[0].Title)
}

func TestListTasks_JSONShape(t *testing.T) {
	port := newFakePort()
	_, app := setupTestApp(t, port)
	_, err := port.CreateTask(context.Background(), domain.Draft{Title: "Shape"})
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/tasks", "")
	raw := decodeBody[[]map[string]any](t, resp)
	require.Len(t, raw, 1)

	for _, key := range []string{"id", "title", "description", "status", "priority", "due_date", "created_at", "updated_at"} {
		assert.Contains(t, raw[0], key)
	}
	assert.Nil(t, raw[0]["description"])
	assert.Nil(t, raw[0]["due_date"])
}

func TestUpdateTask(t *testing.T) {
	port := newFakePort()
	_, app := setupTestApp(t, port)
	_, err := port.CreateTask(context.Background(), domain.Draft{Title: "Original title"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{"partial update", "/tasks/1", `{"title":"Updated title","priority":"High"}`, fiber.StatusNoContent},
		{"missing task", "/tasks/42", `{"title":"x"}`, fiber.StatusNotFound},
		{"past due date", "/tasks/1", `{"due_date":"2001-01-01T00:00:00Z"}`, fiber.StatusBadRequest},
		{"invalid status", "/tasks/1", `{"status":"Done"}`, fiber.StatusBadRequest},
		{"bad id", "/tasks/x", `{"title":"x"}`, fiber.StatusBadRequest},
		{"malformed body", "/tasks/1", `{`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestUpdateTask_OnlySuppliedFieldsInPatch(t *testing.T) {
	port := newFakePort()
	_, app := setupTestApp(t, port)
	_, err := port.CreateTask(context.Background(), domain.Draft{Title: "Original title"})
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodPut, "/tasks/1", `{"title":"Updated title","priority":"High"}`)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	require.NotNil(t, port.lastPatch.Title)
	assert.Equal(t, "Updated title", *port.lastPatch.Title)
	require.NotNil(t, port.lastPatch.Priority)
	assert.Equal(t, domain.PriorityHigh, *port.lastPatch.Priority)
	assert.Nil(t, port.lastPatch.Description)
	assert.Nil(t, port.lastPatch.Status)
	assert.Nil(t, port.lastPatch.DueDate)
}

func TestDeleteTask(t *testing.T) {
	port := newFakePort()
	_, app := setupTestApp(t, port)
	_, err := port.CreateTask(context.Background(), domain.Draft{Title: "Doomed"})
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodDelete, "/tasks/1", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/tasks/1", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/tasks/-3", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"storage", domain.StorageError(errors.New("disk full")), fiber.StatusInternalServerError, "storage_error"},
		{"transport", errors.New("get-task service call failed: nats: timeout"), fiber.StatusInternalServerError, "internal_error"},
		{"validation", domain.ValidationError("bad"), fiber.StatusBadRequest, "validation_error"},
		{"not found", domain.NotFoundError(5), fiber.StatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := newFakePort()
			port.err = tt.err
			_, app := setupTestApp(t, port)

			resp := doRequest(t, app, http.MethodGet, "/tasks/5", "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, decodeBody[ErrorResponse](t, resp).Error)
		})
	}
}

func TestHealth(t *testing.T) {
	m, app := setupTestApp(t, newFakePort())
	m.AddHealthCheck("task", staticHealth{Healthy: true, Message: "operational"})

	resp := doRequest(t, app, http.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decodeBody[HealthResponse](t, resp).Status)

	m.AddHealthCheck("cache", staticHealth{Healthy: false, Message: "redis unreachable"})

	resp = doRequest(t, app, http.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody[HealthResponse](t, resp)
	assert.Equal(t, "degraded", body.Status)
	assert.Contains(t, body.Details, "cache")
	assert.Contains(t, body.Details, "task")
}

func TestAPIModule_HealthBeforeStart(t *testing.T) {
	m := NewModule(config.HTTPConfig{Port: 3000}, &mockLogger{})
	assert.False(t, m.Health(context.Background()).Healthy)
	assert.NoError(t, m.Stop(context.Background()))
}

package api

import (
	"errors"
	"fmt"
	"sort"

	domain "github.com/example/task-management/domain/task"
	"github.com/example/task-management/modules/task"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	tasks := app.Group("/tasks")
	tasks.Get("/", m.listTasks)
	tasks.Post("/", m.createTask)
	tasks.Get("/:id", m.getTask)
	tasks.Put("/:id", m.updateTask)
	tasks.Delete("/:id", m.deleteTask)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	status := "healthy"
	details := make(map[string]any, len(m.checks))

	names := make([]string, 0, len(m.checks))
	for name := range m.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		h := m.checks[name].Health(c.UserContext())
		if !h.Healthy {
			status = "degraded"
		}
		details[name] = fiber.Map{
			"healthy": h.Healthy,
			"message": h.Message,
			"details": h.Details,
		}
	}

	return c.JSON(HealthResponse{Status: status, Details: details})
}

// listTasks handles GET /tasks.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	tasks, err := m.taskPort.ListTasks(c.UserContext())
	if err != nil {
		return m.writeError(c, err)
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}
	return c.JSON(resp)
}

// getTask handles GET /tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return badRequest(c, fmt.Sprintf("Invalid task ID %q", c.Params("id")))
	}

	t, err := m.taskPort.GetTask(c.UserContext(), id)
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(toTaskResponse(t))
}

// createTask handles POST /tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := m.validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	t, err := m.taskPort.CreateTask(c.UserContext(), req.toDraft())
	if err != nil {
		return m.writeError(c, err)
	}

	c.Location(fmt.Sprintf("/tasks/%d", t.ID))
	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(t))
}

// updateTask handles PUT /tasks/:id.
func (m *APIModule) updateTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return badRequest(c, fmt.Sprintf("Invalid task ID %q", c.Params("id")))
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := m.validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	if err := m.taskPort.UpdateTask(c.UserContext(), id, req.toPatch()); err != nil {
		return m.writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// deleteTask handles DELETE /tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return badRequest(c, fmt.Sprintf("Invalid task ID %q", c.Params("id")))
	}

	if err := m.taskPort.DeleteTask(c.UserContext(), id); err != nil {
		return m.writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func taskID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_request",
		Message: message,
	})
}

// writeError maps a TaskPort error onto an HTTP status.
func (m *APIModule) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrStorage):
		m.logger.Error("Storage failure", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "storage_error",
			Message: err.Error(),
		})
	default:
		m.logger.Error("Task service call failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "Internal Server Error",
		})
	}
}

// validationMessage turns the first validator failure into a readable message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Title":
		return task.MsgTitleRequired
	case "Description":
		return task.MsgDescriptionTooLong
	case "Status":
		return task.MsgInvalidStatus
	case "Priority":
		return task.MsgInvalidPriority
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/example/task-management/config"
	"github.com/example/task-management/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// HealthChecker is implemented by modules that report their health.
type HealthChecker interface {
	Health(ctx context.Context) mono.HealthStatus
}

// APIModule is the driving adapter that exposes REST endpoints.
// It calls into the core domain (task module) via the TaskPort interface.
type APIModule struct {
	app       *fiber.App
	taskPort  task.TaskPort
	validate  *validator.Validate
	checks    map[string]HealthChecker
	cfg       config.HTTPConfig
	startedAt time.Time
	logger    types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*APIModule)(nil)
	_ mono.DependentModule       = (*APIModule)(nil)
	_ mono.HealthCheckableModule = (*APIModule)(nil)
)

// NewModule creates a new APIModule.
func NewModule(cfg config.HTTPConfig, logger types.Logger) *APIModule {
	return &APIModule{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		checks:   make(map[string]HealthChecker),
		cfg:      cfg,
		logger:   logger,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
// The framework will call SetDependencyServiceContainer for each dependency.
func (m *APIModule) Dependencies() []string {
	return []string{"task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.taskPort = task.NewTaskAdapter(container)
	}
}

// AddHealthCheck includes checker in the GET /health report under name.
func (m *APIModule) AddHealthCheck(name string, checker HealthChecker) {
	m.checks[name] = checker
}

// Start builds the Fiber app and starts listening.
func (m *APIModule) Start(_ context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("taskPort dependency not set")
	}

	m.app = m.newApp()
	addr := fmt.Sprintf(":%d", m.cfg.Port)

	// Start server in goroutine with startup error detection
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			errCh <- err
		}
	}()

	// Wait briefly to catch immediate startup errors (port in use, permission denied)
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.startedAt = time.Now()
	m.logger.Info("HTTP server started", "addr", addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server")
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil || m.startedAt.IsZero() {
		return mono.HealthStatus{
			Healthy: false,
			Message: "not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"port":   m.cfg.Port,
			"uptime": time.Since(m.startedAt).Round(time.Second).String(),
		},
	}
}

// newApp creates the Fiber app with middleware and routes.
func (m *APIModule) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Task Management API",
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: m.cfg.CORSAllowedOrigins,
	}))

	m.setupRoutes(app)
	return app
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}

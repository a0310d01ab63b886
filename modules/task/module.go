package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/task-management/config"
	domain "github.com/example/task-management/domain/task"
	"github.com/example/task-management/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TaskModule provides task management services (core domain).
type TaskModule struct {
	db       *gorm.DB
	repo     *domain.Repository
	service  *Service
	cache    TaskCache
	eventBus mono.EventBus
	dbConfig config.DatabaseConfig
	opts     []ServiceOption
	logger   types.Logger
}

var (
	_ mono.Module                = (*TaskModule)(nil)
	_ mono.ServiceProviderModule = (*TaskModule)(nil)
	_ mono.EventEmitterModule    = (*TaskModule)(nil)
	_ mono.EventBusAwareModule   = (*TaskModule)(nil)
	_ mono.HealthCheckableModule = (*TaskModule)(nil)
)

// NewModule creates a new task module.
func NewModule(dbConfig config.DatabaseConfig, logger types.Logger, opts ...ServiceOption) *TaskModule {
	return &TaskModule{
		dbConfig: dbConfig,
		opts:     opts,
		logger:   logger,
	}
}

func (m *TaskModule) Name() string {
	return "task"
}

// SetCache enables cache-aside lookups. Must be called before Start.
func (m *TaskModule) SetCache(c TaskCache) {
	m.cache = c
}

func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskUpdatedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list-tasks service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-task", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "create-task", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-task", json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register update-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-task", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete-task service: %w", err)
	}

	m.logger.Info("Registered services",
		"services", "list-tasks, get-task, create-task, update-task, delete-task")
	return nil
}

// Start opens the database, runs migrations and builds the service.
func (m *TaskModule) Start(_ context.Context) error {
	db, err := openDatabase(m.dbConfig)
	if err != nil {
		return err
	}
	m.db = db
	m.repo = domain.NewRepository(db)

	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var gateway domain.Gateway = m.repo
	if m.cache != nil {
		gateway = NewCachedGateway(m.repo, m.cache, m.logger)
	}
	m.service = NewService(gateway, m.opts...)

	if m.eventBus == nil {
		m.logger.Warn("Event bus not set, events will not be published")
	}

	m.logger.Info("Task module started",
		"driver", m.dbConfig.Driver,
		"cached", m.cache != nil)
	return nil
}

// Stop closes the database connection.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				m.logger.Error("Failed to close database", "error", err)
			}
		}
	}
	m.logger.Info("Task module stopped")
	return nil
}

// Health pings the database.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	stats := sqlDB.Stats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver":           m.dbConfig.Driver,
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"cached":           m.cache != nil,
		},
	}
}

// Service returns the task service. It is nil until Start succeeds.
func (m *TaskModule) Service() *Service {
	return m.service
}

func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	level := logger.Silent
	if cfg.Debug {
		level = logger.Info
	}
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(level)}

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case config.DriverSQLite, "":
		dialector = sqlite.Open(cfg.Path)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

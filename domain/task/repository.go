package task

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Gateway is the storage contract the task service depends on.
type Gateway interface {
	// ListAll returns every stored task.
	ListAll(ctx context.Context) ([]*Task, error)
	// FindByID returns the task with the given ID, or nil if there is none.
	FindByID(ctx context.Context, id uint) (*Task, error)
	// Insert persists a new task and assigns its ID.
	Insert(ctx context.Context, task *Task) error
	// Update persists every column of an existing task by ID.
	Update(ctx context.Context, task *Task) error
	// Delete removes the task by ID.
	Delete(ctx context.Context, task *Task) error
}

// Repository provides database operations for tasks.
type Repository struct {
	db *gorm.DB
}

var _ Gateway = (*Repository)(nil)

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAll retrieves all tasks ordered by ID.
func (r *Repository) ListAll(ctx context.Context) ([]*Task, error) {
	tasks := make([]*Task, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID retrieves a task by its ID. A missing task is not an error.
func (r *Repository) FindByID(ctx context.Context, id uint) (*Task, error) {
	var task Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// Insert creates a new task in the database.
func (r *Repository) Insert(ctx context.Context, task *Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Update saves all fields of an existing task.
func (r *Repository) Update(ctx context.Context, task *Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete permanently removes a task.
func (r *Repository) Delete(ctx context.Context, task *Task) error {
	if err := r.db.WithContext(ctx).Delete(&Task{}, task.ID).Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Migrate runs database migrations for the tasks table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Task{})
}

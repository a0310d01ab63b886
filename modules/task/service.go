package task

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	domain "github.com/example/task-management/domain/task"
)

// Validation messages returned by the service.
const (
	MsgDueDateInPast      = "Due date cannot be in the past."
	MsgTitleRequired      = "Title is required."
	MsgDescriptionTooLong = "Description cannot exceed 1000 characters."
	MsgInvalidStatus      = "Status must be one of New, InProgress, Completed."
	MsgInvalidPriority    = "Priority must be one of Low, Medium, High."
)

// Service implements the task use cases on top of a storage gateway.
type Service struct {
	gateway domain.Gateway
	now     func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the clock used for timestamps and due-date checks.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a task service backed by gateway.
func NewService(gateway domain.Gateway, opts ...ServiceOption) *Service {
	s := &Service{
		gateway: gateway,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all tasks.
func (s *Service) List(ctx context.Context) domain.Result[[]*domain.Task] {
	tasks, err := s.gateway.ListAll(ctx)
	if err != nil {
		return domain.Fail[[]*domain.Task](domain.StorageError(err))
	}
	if tasks == nil {
		tasks = make([]*domain.Task, 0)
	}
	return domain.Ok(tasks)
}

// Get returns a single task.
func (s *Service) Get(ctx context.Context, id uint) domain.Result[*domain.Task] {
	t, err := s.gateway.FindByID(ctx, id)
	if err != nil {
		return domain.Fail[*domain.Task](domain.StorageError(err))
	}
	if t == nil {
		return domain.Fail[*domain.Task](domain.NotFoundError(id))
	}
	return domain.Ok(t)
}

// Create validates the draft and persists a new task.
func (s *Service) Create(ctx context.Context, draft domain.Draft) domain.Result[*domain.Task] {
	now := s.now()

	if draft.DueDate != nil && s.isPast(*draft.DueDate, now) {
		return domain.Fail[*domain.Task](domain.ValidationError(MsgDueDateInPast))
	}
	if strings.TrimSpace(draft.Title) == "" {
		return domain.Fail[*domain.Task](domain.ValidationError(MsgTitleRequired))
	}
	if verr := validateFields(draft.Description, optional(draft.Status), optional(draft.Priority)); verr != nil {
		return domain.Fail[*domain.Task](verr)
	}

	t := &domain.Task{
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Status == "" {
		t.Status = domain.StatusNew
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if draft.DueDate != nil {
		due := draft.DueDate.UTC()
		t.DueDate = &due
	}

	if err := s.gateway.Insert(ctx, t); err != nil {
		return domain.Fail[*domain.Task](domain.StorageError(err))
	}
	return domain.Ok(t)
}

// Update merges patch into the stored task. Absent fields keep their value.
func (s *Service) Update(ctx context.Context, id uint, patch domain.Patch) domain.Result[bool] {
	t, err := s.gateway.FindByID(ctx, id)
	if err != nil {
		return domain.Fail[bool](domain.StorageError(err))
	}
	if t == nil {
		return domain.Fail[bool](domain.NotFoundError(id))
	}

	now := s.now()
	if patch.DueDate != nil && s.isPast(*patch.DueDate, now) {
		return domain.Fail[bool](domain.ValidationError(MsgDueDateInPast))
	}
	if verr := validateFields(patch.Description, patch.Status, patch.Priority); verr != nil {
		return domain.Fail[bool](verr)
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) != "" {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		desc := *patch.Description
		t.Description = &desc
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		due := patch.DueDate.UTC()
		t.DueDate = &due
	}
	t.UpdatedAt = now

	if err := s.gateway.Update(ctx, t); err != nil {
		return domain.Fail[bool](domain.StorageError(err))
	}
	return domain.Ok(true)
}

// Delete removes the task with the given ID.
func (s *Service) Delete(ctx context.Context, id uint) domain.Result[bool] {
	t, err := s.gateway.FindByID(ctx, id)
	if err != nil {
		return domain.Fail[bool](domain.StorageError(err))
	}
	if t == nil {
		return domain.Fail[bool](domain.NotFoundError(id))
	}

	if err := s.gateway.Delete(ctx, t); err != nil {
		return domain.Fail[bool](domain.StorageError(err))
	}
	return domain.Ok(true)
}

// isPast reports whether due falls on a UTC calendar day before now's.
func (s *Service) isPast(due, now time.Time) bool {
	return dateOf(due).Before(dateOf(now))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateFields(description *string, status *domain.Status, priority *domain.Priority) *domain.Error {
	if description != nil && utf8.RuneCountInString(*description) > domain.MaxDescriptionLength {
		return domain.ValidationError(MsgDescriptionTooLong)
	}
	if status != nil && !status.Valid() {
		return domain.ValidationError(MsgInvalidStatus)
	}
	if priority != nil && !priority.Valid() {
		return domain.ValidationError(MsgInvalidPriority)
	}
	return nil
}

// optional treats the zero value as "not supplied".
func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

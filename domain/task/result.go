package task

import (
	"errors"
	"fmt"
)

// Sentinel errors for task operations. Every *Error matches exactly one of them.
var (
	// ErrNotFound is returned when the referenced task does not exist.
	ErrNotFound = errors.New("task not found")

	// ErrValidation is returned when the input breaks a task rule.
	ErrValidation = errors.New("task validation failed")

	// ErrStorage is returned when the backing store fails.
	ErrStorage = errors.New("task storage failure")
)

// Kind classifies a failed task operation.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation_failed"
	KindStorage    Kind = "storage_error"
)

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindStorage:
		return ErrStorage
	}
	return nil
}

// Error is a classified, human-readable failure.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches the sentinel error of the failure kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates an *Error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NotFoundError reports that no task with the given ID exists.
func NotFoundError(id uint) *Error {
	return NewError(KindNotFound, fmt.Sprintf("Task with ID %d not found.", id))
}

// ValidationError reports a broken input rule.
func ValidationError(message string) *Error {
	return NewError(KindValidation, message)
}

// StorageError wraps a failure of the backing store.
func StorageError(err error) *Error {
	return &Error{
		Kind:    KindStorage,
		Message: fmt.Sprintf("storage failure: %v", err),
		cause:   err,
	}
}

// KindOf returns the failure kind carried by err, or "" if err is unclassified.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}

// Result is the outcome of a service operation: either a value or a failure.
type Result[T any] struct {
	value T
	err   *Error
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail wraps a failure.
func Fail[T any](err *Error) Result[T] {
	return Result[T]{err: err}
}

// Success reports whether the operation succeeded.
func (r Result[T]) Success() bool {
	return r.err == nil
}

// Value returns the payload. It is the zero value on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure, or nil on success.
func (r Result[T]) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Failure returns the typed failure, or nil on success.
func (r Result[T]) Failure() *Error {
	return r.err
}

// Unpack returns the payload and the failure as a conventional Go pair.
func (r Result[T]) Unpack() (T, error) {
	return r.value, r.Err()
}

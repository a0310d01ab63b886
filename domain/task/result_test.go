package task

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestResult_Ok(t *testing.T) {
	r := Ok(true)

	if !r.Success() {
		t.Fatal("expected success")
	}
	if r.Err() != nil {
		t.Errorf("expected nil error, got %v", r.Err())
	}
	if r.Failure() != nil {
		t.Errorf("expected nil failure, got %v", r.Failure())
	}
	if !r.Value() {
		t.Error("expected value true")
	}
}

func TestResult_Fail(t *testing.T) {
	r := Fail[*Task](NotFoundError(42))

	if r.Success() {
		t.Fatal("expected failure")
	}
	if r.Value() != nil {
		t.Errorf("expected nil value, got %+v", r.Value())
	}

	_, err := r.Unpack()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(strings.ToLower(err.Error()), "not found") {
		t.Errorf("expected message to mention not found, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("expected message to reference the id, got %q", err.Error())
	}
}

func TestError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		target error
		want   bool
	}{
		{"not found matches", NotFoundError(1), ErrNotFound, true},
		{"not found is not validation", NotFoundError(1), ErrValidation, false},
		{"validation matches", ValidationError("bad"), ErrValidation, true},
		{"storage matches", StorageError(errors.New("disk full")), ErrStorage, true},
		{"storage is not not found", StorageError(errors.New("disk full")), ErrNotFound, false},
		{"unknown kind matches nothing", NewError(Kind("other"), "x"), ErrValidation, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("list: %w", StorageError(cause))

	if !errors.Is(err, cause) {
		t.Error("expected storage error to unwrap to its cause")
	}
	if KindOf(err) != KindStorage {
		t.Errorf("KindOf() = %q, want %q", KindOf(err), KindStorage)
	}
	if KindOf(cause) != "" {
		t.Errorf("KindOf(unclassified) = %q, want empty", KindOf(cause))
	}
}

package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Code: ErrNotFound, Message: "run 'run_123' not found"}
	want := "NOT_FOUND: run 'run_123' not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("run", "run_abc")
	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Message != "run 'run_abc' not found" {
		t.Errorf("Message = %q, want %q", err.Message, "run 'run_abc' not found")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("Invalid request",
		FieldError{Field: "requests", Message: "required"},
		FieldError{Field: "disk_size", Message: "expected int"},
	)
	if err.Code != ErrValidation {
		t.Errorf("Code = %q, want %q", err.Code, ErrValidation)
	}
	if len(err.Details) != 2 {
		t.Errorf("Details length = %d, want 2", len(err.Details))
	}
}

func TestRangeError_Error(t *testing.T) {
	tests := []struct {
		err  *RangeError
		want string
	}{
		{&RangeError{Field: "head", Value: 12, DiskSize: 10}, "head 12 out of range [0, 10)"},
		{&RangeError{Field: "requests[2]", Value: -1, DiskSize: 200}, "requests[2] -1 out of range [0, 200)"},
		{&RangeError{Field: "disk_size", Value: 0}, "disk_size must be positive, got 0"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&RangeError{Field: "head"}, "RangeError"},
		{fmt.Errorf("wrapped: %w", &InputFormatError{Field: "requests", Token: "x"}), "InputFormatError"},
		{&UnknownPolicyError{Name: "RANDOM"}, "UnknownPolicyError"},
		{&APIError{Code: ErrRange, Message: "head 99 out of range [0, 10)"}, "RangeError"},
		{&APIError{Code: ErrNotFound, Message: "run 'x' not found"}, "Error"},
		{errors.New("boom"), "Error"},
	}
	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   ErrorCode
		wantClient bool
	}{
		{"range", &RangeError{Field: "head", Value: 99, DiskSize: 10}, ErrRange, true},
		{"format", &InputFormatError{Field: "requests", Token: "abc"}, ErrInputFormat, true},
		{"policy", &UnknownPolicyError{Name: "FIFO"}, ErrUnknownPolicy, true},
		{"api", NewValidationError("bad"), ErrValidation, true},
		{"other", errors.New("disk on fire"), ErrInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr, client := ToAPIError(tt.err)
			if apiErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", apiErr.Code, tt.wantCode)
			}
			if client != tt.wantClient {
				t.Errorf("client = %v, want %v", client, tt.wantClient)
			}
		})
	}
}

package model

import (
	"errors"
	"fmt"
)

// ErrorCode represents a structured API error code.
type ErrorCode string

const (
	ErrValidation    ErrorCode = "VALIDATION_ERROR"
	ErrRange         ErrorCode = "RANGE_ERROR"
	ErrInputFormat   ErrorCode = "INPUT_FORMAT_ERROR"
	ErrUnknownPolicy ErrorCode = "UNKNOWN_POLICY"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrRateLimited   ErrorCode = "RATE_LIMITED"
	ErrInternal      ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error returned by the seekplan API.
type APIError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldError describes a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewValidationError creates an APIError with validation details.
func NewValidationError(msg string, details ...FieldError) *APIError {
	return &APIError{Code: ErrValidation, Message: msg, Details: details}
}

// NewNotFoundError creates a NOT_FOUND APIError.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

// RangeError reports a cylinder, head, previous or disk size outside its valid range.
type RangeError struct {
	Field    string
	Value    int
	DiskSize int
}

func (e *RangeError) Error() string {
	if e.Field == "disk_size" {
		return fmt.Sprintf("disk_size must be positive, got %d", e.Value)
	}
	return fmt.Sprintf("%s %d out of range [0, %d)", e.Field, e.Value, e.DiskSize)
}

// InputFormatError reports a token that cannot be parsed as an integer
// (or, for direction, as a known direction name).
type InputFormatError struct {
	Field string
	Token string
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("%s: cannot parse %q", e.Field, e.Token)
}

// UnknownPolicyError reports a policy name outside the recognized set.
type UnknownPolicyError struct {
	Name string
}

func (e *UnknownPolicyError) Error() string {
	return fmt.Sprintf("unknown policy %q (want one of FCFS, SSTF, SCAN, C-SCAN, LOOK, C-LOOK)", e.Name)
}

// ErrorKind returns the short kind name for engine errors, or "Error" for
// anything else. API errors received from a server map back by code.
func ErrorKind(err error) string {
	var (
		rangeErr  *RangeError
		formatErr *InputFormatError
		policyErr *UnknownPolicyError
		apiErr    *APIError
	)
	switch {
	case errors.As(err, &rangeErr):
		return "RangeError"
	case errors.As(err, &formatErr):
		return "InputFormatError"
	case errors.As(err, &policyErr):
		return "UnknownPolicyError"
	case errors.As(err, &apiErr):
		switch apiErr.Code {
		case ErrRange:
			return "RangeError"
		case ErrInputFormat:
			return "InputFormatError"
		case ErrUnknownPolicy:
			return "UnknownPolicyError"
		}
	}
	return "Error"
}

// ToAPIError maps engine errors to client errors. The bool is false when err
// is not a client error and should be reported as INTERNAL_ERROR.
func ToAPIError(err error) (*APIError, bool) {
	var (
		apiErr    *APIError
		rangeErr  *RangeError
		formatErr *InputFormatError
		policyErr *UnknownPolicyError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr, apiErr.Code != ErrInternal
	case errors.As(err, &rangeErr):
		return &APIError{
			Code:    ErrRange,
			Message: rangeErr.Error(),
			Details: []FieldError{{Field: rangeErr.Field, Message: "out of range"}},
		}, true
	case errors.As(err, &formatErr):
		return &APIError{
			Code:    ErrInputFormat,
			Message: formatErr.Error(),
			Details: []FieldError{{Field: formatErr.Field, Message: "invalid format"}},
		}, true
	case errors.As(err, &policyErr):
		return &APIError{Code: ErrUnknownPolicy, Message: policyErr.Error()}, true
	}
	return &APIError{Code: ErrInternal, Message: err.Error()}, false
}

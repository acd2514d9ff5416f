package apperror

import (
	"errors"
	"fmt"
)

// Code identifies the class of a domain error so the HTTP layer can map it
// to a status without string matching.
type Code string

const (
	CodeNotFound         Code = "NOT_FOUND"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeNoEligibleRun    Code = "NO_ELIGIBLE_RUN"
	CodeTransientStore   Code = "TRANSIENT_STORE_ERROR"
)

type AppError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNotFound(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewPermissionDenied(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodePermissionDenied, Message: fmt.Sprintf(format, args...)}
}

func NewValidation(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNoEligibleRun(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeNoEligibleRun, Message: fmt.Sprintf(format, args...)}
}

// NewTransientStore wraps a store call failure that the caller boundary may
// retry (idempotent reads only).
func NewTransientStore(msg string, err error) *AppError {
	return &AppError{Code: CodeTransientStore, Message: msg, Err: err}
}

func CodeOf(err error) (Code, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

func IsNotFound(err error) bool         { c, ok := CodeOf(err); return ok && c == CodeNotFound }
func IsPermissionDenied(err error) bool { c, ok := CodeOf(err); return ok && c == CodePermissionDenied }
func IsValidation(err error) bool       { c, ok := CodeOf(err); return ok && c == CodeValidation }
func IsNoEligibleRun(err error) bool    { c, ok := CodeOf(err); return ok && c == CodeNoEligibleRun }
func IsTransientStore(err error) bool   { c, ok := CodeOf(err); return ok && c == CodeTransientStore }

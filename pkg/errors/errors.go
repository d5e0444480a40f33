package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Kind classifies an application error so callers can branch on the
// outcome instead of matching message strings.
type Kind string

const (
	KindPermissionDenied Kind = "permission_denied"
	KindValidation       Kind = "validation"
	KindConflict         Kind = "conflict"
	KindNotFound         Kind = "not_found"
	KindUpstream         Kind = "upstream"
)

// AppError is the single error type returned by use-case services for
// expected failure conditions. Code names the violated rule or field,
// never a generic failure.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// PermissionDenied names the policy rule that rejected the operation.
func PermissionDenied(rule, message string) *AppError {
	return &AppError{Kind: KindPermissionDenied, Code: rule, Message: message}
}

// Validation names the field that failed validation.
func Validation(field, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: field, Message: message}
}

func Conflict(code, message string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message}
}

func NotFound(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

// Upstream wraps a storage or identity-provider failure. The cause is
// preserved for logging only and is never surfaced to clients.
func Upstream(message string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Code: "UPSTREAM_ERROR", Message: message, Err: err}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// CodeOf returns the rule/field code of an AppError, or "" for other errors.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

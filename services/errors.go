package services

import (
	"errors"
	"fmt"
)

// ErrKind is the machine-checkable error category carried to the API
// layer. Controllers map kinds to HTTP status codes in one place.
type ErrKind string

const (
	KindValidation ErrKind = "validation"
	KindNotFound   ErrKind = "not_found"
	KindConflict   ErrKind = "conflict"
	KindStorage    ErrKind = "storage"
)

// ServiceError pairs a kind with a stable error code (surfaced to
// clients as error.<code>) and a human-readable message. Storage errors
// keep their cause for logging but the cause is never echoed to the
// caller.
type ServiceError struct {
	Kind    ErrKind
	Code    string
	Message string
	cause   error
}

func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.cause }

func validationErr(code, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func notFoundErr(code, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func conflictErr(code, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

func storageErr(cause error, message string) *ServiceError {
	return &ServiceError{Kind: KindStorage, Code: "internal", Message: message, cause: cause}
}

// KindOf extracts the kind from an error chain; unknown errors are
// treated as storage failures.
func KindOf(err error) ErrKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStorage
}

// AsServiceError returns the ServiceError in the chain, or a generic
// internal one so callers always have a code and message to render.
func AsServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return &ServiceError{Kind: KindStorage, Code: "internal", Message: "internal server error", cause: err}
}

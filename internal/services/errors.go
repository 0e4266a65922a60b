package services

import (
	"fmt"
	"strings"
)

// The service layer reports failures through a closed set of error types.
// Handlers branch on them with errors.As to pick the response shape.

// NotFoundError means the addressed record, or a record referenced by the
// request payload, does not exist in the store.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// DatabaseError means the store rejected the operation, typically because a
// delete would orphan rows that still reference the record.
type DatabaseError struct {
	Message string
}

func (e *DatabaseError) Error() string {
	return e.Message
}

// FieldMessage is a single field-level validation failure.
type FieldMessage struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// ValidationError carries one or more field-level failures. The request was
// rejected before any store mutation.
type ValidationError struct {
	Errors []FieldMessage
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.FieldName, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newNotFoundError(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

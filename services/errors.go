package services

import (
	"log"
	"net/http"
)

// Error carries the HTTP status an operation failure maps to. Controllers
// translate it into the standard error payload.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewValidationError(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

func NewForbiddenError(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// NewStorageError logs the underlying persistence failure and returns a
// generic 500; storage detail never reaches the caller.
func NewStorageError(op string, err error) *Error {
	log.Printf("storage error in %s: %v", op, err)
	return &Error{Status: http.StatusInternalServerError, Message: "Database error"}
}

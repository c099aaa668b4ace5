// Package apperrors defines the error taxonomy shared by all layers.
// Services return these typed errors; the HTTP layer maps them to status
// codes in internal/response.
package apperrors

import "fmt"

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

// NewNotFound creates a NotFoundError for the given entity and id.
func NewNotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id=%d not found", e.Entity, e.ID)
}

// ForbiddenError indicates the caller lacks permission for the action.
type ForbiddenError struct {
	Message string
}

// NewForbidden creates a ForbiddenError with the given reason.
func NewForbidden(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// BadRequestError indicates malformed input, an invalid interval or
// pagination window, or an illegal state transition.
type BadRequestError struct {
	Message string
}

// NewBadRequest creates a BadRequestError with the given reason.
func NewBadRequest(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// ConflictError indicates a uniqueness violation or a lost write race.
type ConflictError struct {
	Message string
}

// NewConflict creates a ConflictError with the given reason.
func NewConflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message
}

// UnsupportedStateError indicates an unrecognized listing state literal.
// It is distinguished from BadRequestError so callers can surface the
// offending literal verbatim.
type UnsupportedStateError struct {
	State string
}

// NewUnsupportedState creates an UnsupportedStateError echoing the literal.
func NewUnsupportedState(state string) *UnsupportedStateError {
	return &UnsupportedStateError{State: state}
}

func (e *UnsupportedStateError) Error() string {
	return fmt.Sprintf("Unknown state: %s", e.State)
}

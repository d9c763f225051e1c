package services

import "fmt"

// NotFoundError indicates that the referenced resource does not exist or is
// not visible to the caller.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewNotFoundError builds a NotFoundError for a resource/id pair.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// InvalidStateError indicates a transition attempted from a disallowed state.
// The current actual state is always included so callers can explain why.
type InvalidStateError struct {
	Resource     string
	ID           string
	CurrentState string
	Attempted    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s %s %s: current state is %s",
		e.Attempted, e.Resource, e.ID, e.CurrentState)
}

// NewInvalidStateError builds an InvalidStateError for a rejected transition.
func NewInvalidStateError(resource, id, current, attempted string) error {
	return &InvalidStateError{Resource: resource, ID: id, CurrentState: current, Attempted: attempted}
}

// ValidationError indicates malformed request input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

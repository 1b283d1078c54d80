package errs

import (
	"errors"
	"fmt"
)

var (
	// Sentinels for the lifecycle errors. The HTTP adapter maps ErrInvalidState
	// and ErrCapacityExceeded to 409 and ErrForbidden to 403.
	ErrInvalidState     = errors.New("invalid state")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrForbidden        = errors.New("forbidden")
)

// InvalidStateError reports a transition that is not allowed from the
// entity's current status, or a precondition on a related entity that does
// not hold (Reason is set in that case).
type InvalidStateError struct {
	Entity string
	Status string
	Action string
	Reason string
}

// NewInvalidStateError reports that action is not allowed on entity in status.
func NewInvalidStateError(entity, status, action string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, Status: status, Action: action}
}

// NewInvalidStateErrorWithReason reports a failed precondition in free text,
// for example "is not linked to a collection center".
func NewInvalidStateErrorWithReason(entity, reason string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, Reason: reason}
}

// Error prefers Reason when it is set.
func (e *InvalidStateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s %s", ErrInvalidState, e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s: cannot %s %s in %s status", ErrInvalidState, e.Action, e.Entity, e.Status)
}

// Unwrap returns ErrInvalidState.
func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// CapacityExceededError is returned when adding Requested units to a center
// would push its load above MaxCapacity.
type CapacityExceededError struct {
	CenterID    string
	CurrentLoad int
	Requested   int
	MaxCapacity int
}

// NewCapacityExceededError captures the center state at the moment of refusal.
func NewCapacityExceededError(centerID string, currentLoad, requested, maxCapacity int) *CapacityExceededError {
	return &CapacityExceededError{
		CenterID:    centerID,
		CurrentLoad: currentLoad,
		Requested:   requested,
		MaxCapacity: maxCapacity,
	}
}

// Error includes the load, the requested amount and the maximum.
func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: center %s has load %d, cannot add %d (max capacity %d)",
		ErrCapacityExceeded, e.CenterID, e.CurrentLoad, e.Requested, e.MaxCapacity)
}

// Unwrap returns ErrCapacityExceeded.
func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// ForbiddenError is returned when the principal lacks the role or ownership an
// operation needs.
type ForbiddenError struct {
	Username string
	Reason   string
}

// NewForbiddenError creates the error. reason reads after the username, as in
// "is not staff of the collection center".
func NewForbiddenError(username, reason string) *ForbiddenError {
	return &ForbiddenError{Username: username, Reason: reason}
}

// Error formats as "forbidden: <username> <reason>".
func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrForbidden, e.Username, e.Reason)
}

// Unwrap returns ErrForbidden.
func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

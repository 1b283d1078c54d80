package errs

import (
	"errors"
	"fmt"
)

// ErrObjectNotFound is the sentinel behind ObjectNotFoundError.
var ErrObjectNotFound = errors.New("object not found")

// ObjectNotFoundError is returned by repositories and use cases when an entity
// referenced by id (or another lookup key) does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError names the kind of object (paramName) and the key looked up.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause keeps the storage error in Cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

// Error prints only the ID unless a cause is attached.
func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

// Unwrap returns ErrObjectNotFound.
func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

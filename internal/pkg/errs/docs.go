// Package errs provides the typed errors shared by the donation logistics core.
//
// Every error type follows the same shape:
//   - a sentinel error variable (e.g. ErrInvalidState) usable with errors.Is
//   - a struct type carrying the details of the failure
//   - New*Error and, where a cause makes sense, New*ErrorWithCause constructors
//   - Error() for the message and Unwrap() returning the sentinel
//
// Value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError)
// describe bad input. ObjectNotFoundError describes a missing entity. The lifecycle
// errors (InvalidStateError, CapacityExceededError, ForbiddenError) describe a
// transition that was refused by the state machine, the capacity tracker or the
// access rules.
package errs

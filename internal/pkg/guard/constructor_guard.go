// Package guard holds ConstructorGuard, a marker embedded in aggregates and
// use-case objects so that zero values can be told apart from values built
// through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is used when Validate gets a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is true only when created by NewConstructorGuard. Embed it
// in a struct and call Validate from the struct's own Validate method:
//
//	type Donor struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (d *Donor) Validate() error {
//	    return d.guard.Validate(ErrDonorNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns an armed guard. Call it only from constructors.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

// Package center implements the CollectionCenter aggregate: a site with a
// bounded storage capacity whose load grows and shrinks as donations are
// linked to and released from it.
package center

import (
	"errors"
	"fmt"
	"strings"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var (
	// ErrCenterIsNotConstructed is returned by Validate for a zero-value or nil
	// center that bypassed NewCollectionCenter.
	ErrCenterIsNotConstructed = errors.New("CollectionCenter must be created via NewCollectionCenter constructor")
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
)

// CollectionCenter is the aggregate root for a collection site. It owns the
// load bookkeeping: currentLoad is the sum of quantities of the donations
// linked to it, and only Reserve, Free and Reconcile change it.
//
// Invariants:
//   - name is never blank
//   - maxCapacity is greater than zero
//   - currentLoad never drops below zero
//   - currentLoad stays within maxCapacity whenever Reserve is enforced
type CollectionCenter struct {
	id            kernel.UUID
	name          string
	location      string
	maxCapacity   int
	currentLoad   int
	staffUsername string
	guard         guard.ConstructorGuard
}

// Snapshot is the flat persisted form of a CollectionCenter.
type Snapshot struct {
	ID            kernel.UUID
	Name          string
	Location      string
	MaxCapacity   int
	CurrentLoad   int
	StaffUsername string
}

// NewCollectionCenter creates an empty center (currentLoad 0).
//
// Parameters:
//   - id: center identifier, must be a valid UUID
//   - name: display name, must not be blank
//   - location: free-form address, may be empty
//   - maxCapacity: storage bound in donation quantity units, must be positive
//   - staffUsername: the staff account managing the center, may be empty
//     until a staff member is assigned
//
// Returns the center, or every validation error joined together.
//
// Example:
//
//	c, err := NewCollectionCenter(kernel.NewUUID(), "North depot", "Harbour Rd 1", 100, "maria")
//	if err != nil {
//	    return err
//	}
//	_ = c.Reserve(10, true) // load 10, available 90
func NewCollectionCenter(id kernel.UUID, name, location string, maxCapacity int, staffUsername string) (*CollectionCenter, error) {
	c := &CollectionCenter{
		location:      strings.TrimSpace(location),
		staffUsername: strings.TrimSpace(staffUsername),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setMaxCapacity(maxCapacity),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Restore rebuilds a center from persistence, including its current load. A
// negative stored load is rejected; a load above the maximum is kept because an
// unenforced policy can produce it.
func Restore(s Snapshot) (*CollectionCenter, error) {
	c, err := NewCollectionCenter(s.ID, s.Name, s.Location, s.MaxCapacity, s.StaffUsername)
	if err != nil {
		return nil, err
	}
	if s.CurrentLoad < 0 {
		return nil, errs.NewValueIsOutOfRangeError("currentLoad", s.CurrentLoad, 0, s.MaxCapacity)
	}
	c.currentLoad = s.CurrentLoad
	return c, nil
}

// Validate reports ErrCenterIsNotConstructed for a nil or zero-value center.
func (c *CollectionCenter) Validate() error {
	if c == nil {
		return ErrCenterIsNotConstructed
	}
	return c.guard.Validate(ErrCenterIsNotConstructed)
}

// IsEqual compares centers by ID.
func (c *CollectionCenter) IsEqual(other *CollectionCenter) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the center identifier.
func (c *CollectionCenter) ID() kernel.UUID { return c.id }

// Name returns the display name.
func (c *CollectionCenter) Name() string { return c.name }

// Location returns the address, possibly empty.
func (c *CollectionCenter) Location() string { return c.location }

// MaxCapacity returns the storage bound.
func (c *CollectionCenter) MaxCapacity() int { return c.maxCapacity }

// CurrentLoad returns the summed quantity of linked donations.
func (c *CollectionCenter) CurrentLoad() int { return c.currentLoad }

// StaffUsername returns the managing staff account, or "" when unassigned.
func (c *CollectionCenter) StaffUsername() string { return c.staffUsername }

// HasStaff reports whether username manages this center. An unassigned center
// has no staff, so the empty username never matches.
func (c *CollectionCenter) HasStaff(username string) bool {
	return c.staffUsername != "" && c.staffUsername == username
}

// AvailableCapacity never goes below zero, even when an unenforced policy let
// the load exceed the maximum.
func (c *CollectionCenter) AvailableCapacity() int {
	return max(c.maxCapacity-c.currentLoad, 0)
}

// Snapshot copies the center state for persistence.
func (c *CollectionCenter) Snapshot() Snapshot {
	return Snapshot{
		ID:            c.id,
		Name:          c.name,
		Location:      c.location,
		MaxCapacity:   c.maxCapacity,
		CurrentLoad:   c.currentLoad,
		StaffUsername: c.staffUsername,
	}
}

// Reserve adds quantity to the load. With enforce set, the load may not pass
// maxCapacity and the center is left untouched on failure.
func (c *CollectionCenter) Reserve(quantity int, enforce bool) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	newLoad := c.currentLoad + quantity
	if enforce && newLoad > c.maxCapacity {
		return errs.NewCapacityExceededError(c.id.String(), c.currentLoad, quantity, c.maxCapacity)
	}
	c.currentLoad = newLoad
	return nil
}

// Free subtracts quantity from the load, flooring at zero.
func (c *CollectionCenter) Free(quantity int) {
	c.currentLoad = max(c.currentLoad-quantity, 0)
}

// Reconcile overwrites the load with a recomputed value.
func (c *CollectionCenter) Reconcile(load int) error {
	if load < 0 {
		return errs.NewValueIsOutOfRangeError("currentLoad", load, 0, c.maxCapacity)
	}
	c.currentLoad = load
	return nil
}

// UpdateDetails renames, relocates or resizes the center. Shrinking below the
// current load is refused.
func (c *CollectionCenter) UpdateDetails(name, location string, maxCapacity int) error {
	if maxCapacity < c.currentLoad {
		return errs.NewValueIsOutOfRangeError("maxCapacity", maxCapacity, c.currentLoad, "unbounded")
	}
	if err := errors.Join(c.setName(name), c.setMaxCapacity(maxCapacity)); err != nil {
		return err
	}
	c.location = strings.TrimSpace(location)
	return nil
}

// AssignStaff replaces the managing staff account. An empty username unassigns.
func (c *CollectionCenter) AssignStaff(username string) {
	c.staffUsername = strings.TrimSpace(username)
}

func (c *CollectionCenter) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *CollectionCenter) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CollectionCenter) setMaxCapacity(maxCapacity int) error {
	if maxCapacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxCapacity is invalid", fmt.Errorf("%d is not greater than 0", maxCapacity))
	}
	c.maxCapacity = maxCapacity
	return nil
}

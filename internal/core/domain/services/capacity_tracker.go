package services

import (
	"errors"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/donation"
	"donations/internal/pkg/errs"
)

// CapacityTracker keeps CollectionCenter.currentLoad equal to the sum of
// quantities of the donations linked to it.
//
// With enforcement on (the default), a link that would push the load above
// maxCapacity fails with errs.CapacityExceededError and nothing changes. With
// enforcement off the link is accepted and the load may exceed the maximum.
type CapacityTracker struct {
	enforce bool
}

// NewCapacityTracker creates a tracker. enforce comes from configuration
// (CAPACITY_ENFORCED) and is true in production.
func NewCapacityTracker(enforce bool) CapacityTracker {
	return CapacityTracker{enforce: enforce}
}

// Enforced reports whether TryAssign refuses loads above maxCapacity.
func (t CapacityTracker) Enforced() bool {
	return t.enforce
}

// TryAssign links d to c and adds its quantity to c's load. Linking a donation
// to the center it is already linked to is a no-op. A donation linked to a
// different center must be released from it first.
func (t CapacityTracker) TryAssign(c *center.CollectionCenter, d *donation.Donation) error {
	if err := errors.Join(c.Validate(), d.Validate()); err != nil {
		return err
	}
	if d.IsLinkedTo(c.ID()) {
		return nil
	}
	if d.CenterID() != nil {
		return errs.NewInvalidStateErrorWithReason("donation", "is linked to another collection center")
	}
	if !d.Status().CanChangeCenter() {
		return errs.NewInvalidStateError("donation", d.Status().String(), "assign a center to")
	}

	if err := c.Reserve(d.Quantity(), t.enforce); err != nil {
		return err
	}
	return d.LinkToCenter(c.ID())
}

// Release unlinks d from c and frees its quantity. It is a no-op when d is not
// linked to c.
func (t CapacityTracker) Release(c *center.CollectionCenter, d *donation.Donation) error {
	if err := errors.Join(c.Validate(), d.Validate()); err != nil {
		return err
	}
	if !d.IsLinkedTo(c.ID()) {
		return nil
	}
	c.Free(d.Quantity())
	d.UnlinkCenter()
	return nil
}

// LinkedLoad is the load a center should carry for the given linked donations.
func LinkedLoad(c *center.CollectionCenter, linked []*donation.Donation) int {
	load := 0
	for _, d := range linked {
		if d.IsLinkedTo(c.ID()) && d.Status().CountsTowardLoad() {
			load += d.Quantity()
		}
	}
	return load
}

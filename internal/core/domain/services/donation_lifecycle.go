package services

import (
	"errors"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
)

// DonationLifecycle applies the staff-driven donation transitions.
type DonationLifecycle struct {
	access   AccessPolicy
	capacity CapacityTracker
}

// NewDonationLifecycle wires the access rules and the capacity tracker used
// by every transition.
//
// Example:
//
//	tracker := NewCapacityTracker(true)
//	lifecycle := NewDonationLifecycle(NewAccessPolicy(), tracker)
//	err := lifecycle.Accept(staff, center, donation)
func NewDonationLifecycle(access AccessPolicy, capacity CapacityTracker) DonationLifecycle {
	return DonationLifecycle{access: access, capacity: capacity}
}

// Accept moves a PENDING donation to COLLECTED. c is the center the donation
// is linked to (nil when unlinked).
func (l DonationLifecycle) Accept(p kernel.Principal, c *center.CollectionCenter, d *donation.Donation) error {
	if err := l.authorizeLinked(p, c, d); err != nil {
		return err
	}
	return d.Accept()
}

// Reject moves a PENDING donation to REJECTED and gives its capacity back.
func (l DonationLifecycle) Reject(p kernel.Principal, c *center.CollectionCenter, d *donation.Donation) error {
	if err := l.authorizeLinked(p, c, d); err != nil {
		return err
	}
	if err := d.Reject(); err != nil {
		return err
	}
	return l.capacity.Release(c, d)
}

// AssignToCenter links d to target, releasing it from its current center
// (from, nil when unlinked) first. Allowed for ADMIN, the staff of target and
// the donor that owns the donation.
func (l DonationLifecycle) AssignToCenter(
	p kernel.Principal,
	owner *donor.Donor,
	d *donation.Donation,
	from, target *center.CollectionCenter,
) error {
	if err := errors.Join(d.Validate(), target.Validate()); err != nil {
		return err
	}
	if l.access.AuthorizeCenter(p, target) != nil && !(p.HasRole(kernel.RoleDonor) && owner != nil && owner.IsOwnedBy(p.Username())) {
		return errs.NewForbiddenError(p.Username(), "may not assign this donation to the collection center")
	}
	if d.IsLinkedTo(target.ID()) {
		return nil
	}
	if !d.Status().CanChangeCenter() {
		return errs.NewInvalidStateError("donation", d.Status().String(), "assign a center to")
	}
	if from != nil {
		if err := l.capacity.Release(from, d); err != nil {
			return err
		}
	}
	return l.capacity.TryAssign(target, d)
}

// Process closes a DELIVERED donation.
func (l DonationLifecycle) Process(p kernel.Principal, c *center.CollectionCenter, d *donation.Donation) error {
	if err := l.authorizeLinked(p, c, d); err != nil {
		return err
	}
	return d.Process()
}

func (l DonationLifecycle) authorizeLinked(p kernel.Principal, c *center.CollectionCenter, d *donation.Donation) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := l.access.AuthorizeCenter(p, c); err != nil {
		return err
	}
	if c == nil || !d.IsLinkedTo(c.ID()) {
		return errs.NewInvalidStateErrorWithReason("donation", "is not linked to the collection center")
	}
	return nil
}

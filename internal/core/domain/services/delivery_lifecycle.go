package services

import (
	"errors"
	"time"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/delivery"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/recipient"
	"donations/internal/pkg/errs"
)

// DeliveryLifecycle moves a delivery through its statuses and keeps the
// donation status and the driver availability in step with it:
//
//	create    donation COLLECTED -> ASSIGNED, driver reserved
//	pickup    delivery ASSIGNED -> PICKED_UP, donation -> IN_TRANSIT
//	complete  delivery -> DELIVERED, donation -> DELIVERED, driver released
//	cancel    delivery -> CANCELLED, donation -> COLLECTED, driver released
//	remove    donation -> COLLECTED, driver released if the delivery was active
//
// Every method checks all guards before mutating anything.
type DeliveryLifecycle struct {
	access AccessPolicy
}

// NewDeliveryLifecycle creates the service with the access rules it checks
// before every transition.
func NewDeliveryLifecycle(access AccessPolicy) DeliveryLifecycle {
	return DeliveryLifecycle{access: access}
}

// Participants are the aggregates a delivery transition touches.
type Participants struct {
	Delivery *delivery.Delivery
	Donation *donation.Donation
	// Center is the center the delivery leaves from.
	Center *center.CollectionCenter
	// Driver is nil when the stored delivery has no driver.
	Driver *driver.DeliveryPartner
}

// CreateDeliveryParams gathers everything Create needs, loaded and locked by
// the caller. Latest is the most recent delivery of the donation, or nil.
type CreateDeliveryParams struct {
	ID                  kernel.UUID
	Donation            *donation.Donation
	Center              *center.CollectionCenter
	Driver              *driver.DeliveryPartner
	Recipient           *recipient.Recipient
	Latest              *delivery.Delivery
	ScheduledPickupTime *time.Time
	Notes               string
	Now                 time.Time
}

// Create starts a delivery for a COLLECTED donation. Latest is the most recent
// delivery of the donation, or nil.
func (l DeliveryLifecycle) Create(p kernel.Principal, in CreateDeliveryParams) (*delivery.Delivery, error) {
	if err := errors.Join(
		in.Donation.Validate(),
		in.Center.Validate(),
		in.Driver.Validate(),
		in.Recipient.Validate(),
	); err != nil {
		return nil, err
	}
	if err := l.access.AuthorizeCenter(p, in.Center); err != nil {
		return nil, err
	}
	if !in.Donation.IsLinkedTo(in.Center.ID()) {
		return nil, errs.NewInvalidStateErrorWithReason("donation", "is not linked to the collection center")
	}
	if in.Latest != nil && in.Latest.IsActive() {
		return nil, errs.NewInvalidStateErrorWithReason("donation", "already has an active delivery")
	}
	if _, err := in.Donation.Status().AssignDelivery(); err != nil {
		return nil, err
	}
	if !in.Recipient.IsActive() {
		return nil, errs.NewInvalidStateErrorWithReason("recipient", "is not active")
	}
	if !in.Driver.IsAvailable() {
		return nil, errs.NewInvalidStateErrorWithReason("delivery partner", "is not available")
	}

	d, err := delivery.NewDelivery(
		in.ID,
		in.Donation.ID(),
		in.Center.ID(),
		in.Driver.ID(),
		in.Recipient.ID(),
		in.ScheduledPickupTime,
		in.Notes,
		in.Now,
	)
	if err != nil {
		return nil, err
	}

	if err := in.Driver.Reserve(); err != nil {
		return nil, err
	}
	if err := in.Donation.AssignDelivery(); err != nil {
		return nil, err
	}
	return d, nil
}

// Pickup is done by the driver (or center staff) when the goods leave the center.
func (l DeliveryLifecycle) Pickup(p kernel.Principal, in Participants, now time.Time) error {
	if err := l.authorize(p, in); err != nil {
		return err
	}
	if err := errors.Join(
		check(in.Delivery.Status().PickUp),
		check(in.Donation.Status().PickUp),
	); err != nil {
		return err
	}
	if err := in.Delivery.PickUp(now); err != nil {
		return err
	}
	return in.Donation.PickUp()
}

// MarkInTransit only moves the delivery; the donation is already IN_TRANSIT.
func (l DeliveryLifecycle) MarkInTransit(p kernel.Principal, in Participants) error {
	if err := l.authorize(p, in); err != nil {
		return err
	}
	return in.Delivery.MarkInTransit()
}

// Complete finishes a PICKED_UP or IN_TRANSIT delivery: the delivery and the
// donation become DELIVERED and the driver is released. Completing from
// ASSIGNED fails with errs.InvalidStateError and changes nothing, since the
// goods were never picked up.
func (l DeliveryLifecycle) Complete(p kernel.Principal, in Participants, now time.Time) error {
	if err := l.authorize(p, in); err != nil {
		return err
	}
	if err := errors.Join(
		check(in.Delivery.Status().Complete),
		check(in.Donation.Status().Deliver),
	); err != nil {
		return err
	}
	if err := in.Delivery.Complete(now); err != nil {
		return err
	}
	if err := in.Donation.Deliver(); err != nil {
		return err
	}
	if in.Driver != nil {
		in.Driver.Release()
	}
	return nil
}

// Cancel is a center decision; drivers cannot cancel.
func (l DeliveryLifecycle) Cancel(p kernel.Principal, in Participants) error {
	if err := l.validate(in); err != nil {
		return err
	}
	if err := l.access.AuthorizeCenter(p, in.Center); err != nil {
		return err
	}
	if err := errors.Join(
		check(in.Delivery.Status().Cancel),
		check(in.Donation.Status().RevertToCollected),
	); err != nil {
		return err
	}
	if err := in.Delivery.Cancel(); err != nil {
		return err
	}
	if err := in.Donation.RevertToCollected(); err != nil {
		return err
	}
	if in.Driver != nil {
		in.Driver.Release()
	}
	return nil
}

// Remove prepares a delivery record for deletion. The donation is reset only
// when the removed delivery is its latest one; older records no longer drive
// the donation status.
func (l DeliveryLifecycle) Remove(p kernel.Principal, in Participants, latest *delivery.Delivery) error {
	if err := l.access.RequireAdmin(p); err != nil {
		return err
	}
	if err := in.Delivery.Validate(); err != nil {
		return err
	}
	if in.Donation != nil && (latest == nil || latest.IsEqual(in.Delivery)) {
		if err := in.Donation.ResetToCollected(); err != nil {
			return err
		}
	}
	if in.Delivery.IsActive() && in.Driver != nil {
		in.Driver.Release()
	}
	return nil
}

func (l DeliveryLifecycle) authorize(p kernel.Principal, in Participants) error {
	if err := l.validate(in); err != nil {
		return err
	}
	return l.access.AuthorizeDelivery(p, in.Center, in.Driver)
}

func (l DeliveryLifecycle) validate(in Participants) error {
	return errors.Join(in.Delivery.Validate(), in.Donation.Validate())
}

func check[S any](transition func() (S, error)) error {
	_, err := transition()
	return err
}

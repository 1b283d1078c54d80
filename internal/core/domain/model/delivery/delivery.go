// Package delivery implements the Delivery aggregate and its status machine.
// A delivery carries one collected donation from its center to a recipient.
package delivery

import (
	"errors"
	"strings"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

// ErrDeliveryIsNotConstructed is returned by Validate for a nil or zero-value delivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Delivery moves one donation from fromCenterID to a recipient with a driver.
//
// driverID and recipientID are optional only for records restored from
// storage; NewDelivery always sets both.
type Delivery struct {
	id                  kernel.UUID
	donationID          kernel.UUID
	fromCenterID        kernel.UUID
	driverID            *kernel.UUID
	recipientID         *kernel.UUID
	status              Status
	createdAt           time.Time
	scheduledPickupTime *time.Time
	actualPickupTime    *time.Time
	deliveredTime       *time.Time
	notes               string
	guard               guard.ConstructorGuard
}

// Snapshot is the persisted form of a Delivery.
type Snapshot struct {
	ID                  kernel.UUID
	DonationID          kernel.UUID
	FromCenterID        kernel.UUID
	DriverID            *kernel.UUID
	RecipientID         *kernel.UUID
	Status              Status
	CreatedAt           time.Time
	ScheduledPickupTime *time.Time
	ActualPickupTime    *time.Time
	DeliveredTime       *time.Time
	Notes               string
}

// NewDelivery creates a delivery in ASSIGNED status. It does not touch the
// donation or the driver; the delivery lifecycle service moves them together.
//
// Parameters:
//   - id: delivery identifier
//   - donationID: the donation being carried
//   - fromCenterID: the center the donation is linked to
//   - driverID, recipientID: both required for a new delivery
//   - scheduledPickupTime: optional, copied
//   - notes: free text, trimmed
//   - createdAt: creation timestamp, used to find the latest delivery of a donation
//
// Example:
//
//	dl, err := NewDelivery(kernel.NewUUID(), donationID, centerID, driverID, recipientID, nil, "back door", time.Now())
//	if err != nil {
//	    return err
//	}
//	_ = dl.PickUp(time.Now()) // PICKED_UP
func NewDelivery(
	id, donationID, fromCenterID, driverID, recipientID kernel.UUID,
	scheduledPickupTime *time.Time,
	notes string,
	createdAt time.Time,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		wrapRequired("donationID", donationID.Validate()),
		wrapRequired("fromCenterID", fromCenterID.Validate()),
		wrapRequired("driverID", driverID.Validate()),
		wrapRequired("recipientID", recipientID.Validate()),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		id:                  id,
		donationID:          donationID,
		fromCenterID:        fromCenterID,
		driverID:            &driverID,
		recipientID:         &recipientID,
		status:              Assigned,
		createdAt:           createdAt,
		scheduledPickupTime: copyTime(scheduledPickupTime),
		notes:               strings.TrimSpace(notes),
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Restore rebuilds a delivery from persistence. Unlike NewDelivery it keeps the
// stored status and timestamps and tolerates a missing driver or recipient.
func Restore(s Snapshot) (*Delivery, error) {
	if err := errors.Join(
		s.ID.Validate(),
		wrapRequired("donationID", s.DonationID.Validate()),
		wrapRequired("fromCenterID", s.FromCenterID.Validate()),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	return &Delivery{
		id:                  s.ID,
		donationID:          s.DonationID,
		fromCenterID:        s.FromCenterID,
		driverID:            copyID(s.DriverID),
		recipientID:         copyID(s.RecipientID),
		status:              s.Status,
		createdAt:           s.CreatedAt,
		scheduledPickupTime: copyTime(s.ScheduledPickupTime),
		actualPickupTime:    copyTime(s.ActualPickupTime),
		deliveredTime:       copyTime(s.DeliveredTime),
		notes:               s.Notes,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrDeliveryIsNotConstructed for a nil or zero-value delivery.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares deliveries by ID.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery identifier.
func (d *Delivery) ID() kernel.UUID { return d.id }

// DonationID returns the donation being carried.
func (d *Delivery) DonationID() kernel.UUID { return d.donationID }

// FromCenterID returns the origin center.
func (d *Delivery) FromCenterID() kernel.UUID { return d.fromCenterID }

// DriverID returns a copy of the driver ID, or nil.
func (d *Delivery) DriverID() *kernel.UUID { return copyID(d.driverID) }

// RecipientID returns a copy of the recipient ID, or nil.
func (d *Delivery) RecipientID() *kernel.UUID { return copyID(d.recipientID) }

// Status returns the current status.
func (d *Delivery) Status() Status { return d.status }

// CreatedAt returns when the delivery was created.
func (d *Delivery) CreatedAt() time.Time { return d.createdAt }

// ScheduledPickupTime returns the planned pickup time, or nil.
func (d *Delivery) ScheduledPickupTime() *time.Time { return copyTime(d.scheduledPickupTime) }

// ActualPickupTime is set by PickUp.
func (d *Delivery) ActualPickupTime() *time.Time { return copyTime(d.actualPickupTime) }

// DeliveredTime is set by Complete.
func (d *Delivery) DeliveredTime() *time.Time { return copyTime(d.deliveredTime) }

// Notes returns the dispatch notes.
func (d *Delivery) Notes() string { return d.notes }

// IsActive reports whether the delivery still holds its donation.
func (d *Delivery) IsActive() bool {
	return !d.status.IsTerminal()
}

// Snapshot copies the delivery for persistence. Pointer fields are copied too.
func (d *Delivery) Snapshot() Snapshot {
	return Snapshot{
		ID:                  d.id,
		DonationID:          d.donationID,
		FromCenterID:        d.fromCenterID,
		DriverID:            d.DriverID(),
		RecipientID:         d.RecipientID(),
		Status:              d.status,
		CreatedAt:           d.createdAt,
		ScheduledPickupTime: d.ScheduledPickupTime(),
		ActualPickupTime:    d.ActualPickupTime(),
		DeliveredTime:       d.DeliveredTime(),
		Notes:               d.notes,
	}
}

// PickUp records the actual pickup time.
func (d *Delivery) PickUp(now time.Time) error {
	newStatus, err := d.status.PickUp()
	if err != nil {
		return err
	}
	d.status = newStatus
	d.actualPickupTime = &now
	return nil
}

// MarkInTransit moves a PICKED_UP delivery to IN_TRANSIT.
func (d *Delivery) MarkInTransit() error {
	newStatus, err := d.status.MarkInTransit()
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

// Complete records the delivered time.
func (d *Delivery) Complete(now time.Time) error {
	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}
	d.status = newStatus
	d.deliveredTime = &now
	return nil
}

// Cancel moves any non-terminal delivery to CANCELLED. A second cancel fails
// with errs.InvalidStateError.
func (d *Delivery) Cancel() error {
	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Package donation implements the Donation aggregate and its status machine,
// from the donor's pledge through collection, delivery and processing.
package donation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var (
	// ErrDonationIsNotConstructed is returned by Validate for a nil or zero-value donation.
	ErrDonationIsNotConstructed = errors.New("Donation must be created via NewDonation constructor")
	ErrItemNameIsRequired       = errs.NewValueIsRequiredError("itemName")
	ErrUnitIsRequired           = errs.NewValueIsRequiredError("unit")
)

// Donation is the aggregate root for a pledge of goods.
//
// Invariants:
//   - id and donorID are valid identifiers
//   - quantity is greater than 0
//   - centerID may only change while the status is PENDING or COLLECTED
//   - status changes only through the transition methods below
type Donation struct {
	id        kernel.UUID
	donorID   kernel.UUID
	centerID  *kernel.UUID
	itemName  string
	quantity  int
	unit      kernel.Unit
	donatedAt time.Time
	status    Status
	guard     guard.ConstructorGuard
}

// Snapshot carries the full state of a Donation across persistence boundaries.
type Snapshot struct {
	ID        kernel.UUID
	DonorID   kernel.UUID
	CenterID  *kernel.UUID
	ItemName  string
	Quantity  int
	Unit      kernel.Unit
	DonatedAt time.Time
	Status    Status
}

// NewDonation creates a PENDING donation that is not linked to any center.
// Linking, and the capacity that comes with it, is done afterwards through
// services.CapacityTracker.
//
// Parameters:
//   - id: donation identifier
//   - donorID: the donor pledging the goods
//   - itemName: what is donated, must not be blank
//   - quantity: amount in unit, must be positive; this is what counts
//     toward a center's load
//   - unit: measurement unit, see kernel.ParseUnit
//   - donatedAt: when the donor pledged
//
// Returns the donation or every validation error joined.
//
// Example:
//
//	d, err := NewDonation(kernel.NewUUID(), donorID, "Rice", 4, kernel.UnitKilogram, time.Now())
//	if err != nil {
//	    return err
//	}
//	err = tracker.TryAssign(center, d) // links and reserves 4
func NewDonation(
	id, donorID kernel.UUID,
	itemName string,
	quantity int,
	unit kernel.Unit,
	donatedAt time.Time,
) (*Donation, error) {
	d := &Donation{
		status:    Pending,
		donatedAt: donatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setDonorID(donorID),
		d.setItemName(itemName),
		d.setQuantity(quantity),
		d.setUnit(unit),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Restore rebuilds a donation from persisted state without resetting its status.
func Restore(s Snapshot) (*Donation, error) {
	d := &Donation{
		donatedAt: s.DonatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(s.ID),
		d.setDonorID(s.DonorID),
		d.setItemName(s.ItemName),
		d.setQuantity(s.Quantity),
		d.setUnit(s.Unit),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if s.CenterID != nil {
		if err := s.CenterID.Validate(); err != nil {
			return nil, err
		}
		centerID := *s.CenterID
		d.centerID = &centerID
	}
	d.status = s.Status

	return d, nil
}

// Validate reports ErrDonationIsNotConstructed for a nil or zero-value donation.
func (d *Donation) Validate() error {
	if d == nil {
		return ErrDonationIsNotConstructed
	}
	return d.guard.Validate(ErrDonationIsNotConstructed)
}

// IsEqual compares donations by ID.
func (d *Donation) IsEqual(other *Donation) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the donation identifier.
func (d *Donation) ID() kernel.UUID {
	return d.id
}

// DonorID returns the pledging donor.
func (d *Donation) DonorID() kernel.UUID {
	return d.donorID
}

// CenterID returns a copy of the linked center id, or nil when unlinked.
func (d *Donation) CenterID() *kernel.UUID {
	if d.centerID == nil {
		return nil
	}
	id := *d.centerID
	return &id
}

// ItemName returns what was donated.
func (d *Donation) ItemName() string {
	return d.itemName
}

// Quantity returns the amount that counts toward center load.
func (d *Donation) Quantity() int {
	return d.quantity
}

// Unit returns the measurement unit of Quantity.
func (d *Donation) Unit() kernel.Unit {
	return d.unit
}

// DonatedAt returns when the donation was pledged.
func (d *Donation) DonatedAt() time.Time {
	return d.donatedAt
}

// Status returns the current lifecycle status.
func (d *Donation) Status() Status {
	return d.status
}

// Snapshot copies the donation for persistence.
func (d *Donation) Snapshot() Snapshot {
	return Snapshot{
		ID:        d.id,
		DonorID:   d.donorID,
		CenterID:  d.CenterID(),
		ItemName:  d.itemName,
		Quantity:  d.quantity,
		Unit:      d.unit,
		DonatedAt: d.donatedAt,
		Status:    d.status,
	}
}

// IsLinkedTo reports whether the donation is linked to the given center.
func (d *Donation) IsLinkedTo(centerID kernel.UUID) bool {
	return kernel.SameRef(d.centerID, centerID)
}

// LinkToCenter records the center holding the donation. Capacity bookkeeping
// is the caller's job; see services.CapacityTracker.
func (d *Donation) LinkToCenter(centerID kernel.UUID) error {
	if err := centerID.Validate(); err != nil {
		return err
	}
	if !d.status.CanChangeCenter() {
		return errs.NewInvalidStateError("donation", d.status.String(), "assign a center to")
	}
	d.centerID = &centerID
	return nil
}

// UnlinkCenter clears the center link without touching any load. Use
// services.CapacityTracker.Release to keep the center consistent.
func (d *Donation) UnlinkCenter() {
	d.centerID = nil
}

// Accept marks a pending donation as collected by its center.
func (d *Donation) Accept() error {
	return d.transition(d.status.Accept)
}

// Reject marks a pending donation as rejected. Releasing the center capacity
// it held is done by the capacity tracker.
func (d *Donation) Reject() error {
	return d.transition(d.status.Reject)
}

// AssignDelivery records that an active delivery now holds the donation.
func (d *Donation) AssignDelivery() error {
	if d.centerID == nil {
		return errs.NewInvalidStateErrorWithReason("donation", "is not linked to a collection center")
	}
	return d.transition(d.status.AssignDelivery)
}

// PickUp moves an ASSIGNED donation to IN_TRANSIT when its driver collects it.
func (d *Donation) PickUp() error {
	return d.transition(d.status.PickUp)
}

// Deliver moves an IN_TRANSIT donation to DELIVERED.
func (d *Donation) Deliver() error {
	return d.transition(d.status.Deliver)
}

// RevertToCollected is applied when the holding delivery is cancelled.
func (d *Donation) RevertToCollected() error {
	return d.transition(d.status.RevertToCollected)
}

// ResetToCollected is applied when the holding delivery record is removed.
func (d *Donation) ResetToCollected() error {
	return d.transition(d.status.ResetToCollected)
}

// Process closes a DELIVERED donation.
func (d *Donation) Process() error {
	return d.transition(d.status.Process)
}

func (d *Donation) transition(next func() (Status, error)) error {
	newStatus, err := next()
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

func (d *Donation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Donation) setDonorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("donorID", err)
	}
	d.donorID = id
	return nil
}

func (d *Donation) setItemName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrItemNameIsRequired
	}
	d.itemName = name
	return nil
}

func (d *Donation) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	d.quantity = quantity
	return nil
}

func (d *Donation) setUnit(unit kernel.Unit) error {
	if unit == "" {
		return ErrUnitIsRequired
	}
	d.unit = kernel.ParseUnit(string(unit))
	return nil
}

// Package waste implements the Waste aggregate: a write-off of donated goods
// that could not be delivered. A waste record is PENDING until the center
// disposes of it and marks it PROCESSED.
package waste

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
	ErrWasteIsNotConstructed = errors.New("Waste must be created via NewWaste constructor")
	ErrItemNameIsRequired    = errs.NewValueIsRequiredError("itemName")
)

// Status of a waste record.
type Status int

const (
	Unknown Status = iota
	Pending
	Processed
)

// String returns the wire name, or "UNKNOWN".
func (s Status) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Processed:
		return "PROCESSED"
	default:
		return "UNKNOWN"
	}
}

// Validate accepts PENDING and PROCESSED only.
func (s Status) Validate() error {
	if s != Pending && s != Processed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ParseStatus is case-insensitive.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(s) {
	case "PENDING":
		return Pending, nil
	case "PROCESSED":
		return Processed, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a waste status", s))
	}
}

// Waste records goods written off from a donation at the center holding it.
// Waste does not change the center load; the donation keeps counting until it
// leaves the center.
type Waste struct {
	id         kernel.UUID
	donationID kernel.UUID
	centerID   kernel.UUID
	itemName   string
	quantity   int
	unit       kernel.Unit
	recordedAt time.Time
	status     Status
	guard      guard.ConstructorGuard
}

// Snapshot is the persisted form of a Waste record.
type Snapshot struct {
	ID         kernel.UUID
	DonationID kernel.UUID
	CenterID   kernel.UUID
	ItemName   string
	Quantity   int
	Unit       kernel.Unit
	RecordedAt time.Time
	Status     Status
}

// NewWaste creates a PENDING write-off.
//
// Parameters:
//   - id: waste record identifier
//   - donationID: the donation the goods came from
//   - centerID: the center the donation is linked to when the waste is recorded
//   - itemName: what was written off, must not be blank
//   - quantity: amount written off, must be positive
//   - unit: measurement unit, unknown names become OTHER
//   - recordedAt: when the write-off was recorded
func NewWaste(
	id, donationID, centerID kernel.UUID,
	itemName string,
	quantity int,
	unit kernel.Unit,
	recordedAt time.Time,
) (*Waste, error) {
	return build(Snapshot{
		ID:         id,
		DonationID: donationID,
		CenterID:   centerID,
		ItemName:   itemName,
		Quantity:   quantity,
		Unit:       unit,
		RecordedAt: recordedAt,
		Status:     Pending,
	})
}

// Restore rebuilds a waste record with its stored status.
func Restore(s Snapshot) (*Waste, error) {
	return build(s)
}

func build(s Snapshot) (*Waste, error) {
	var errList []error
	errList = append(errList, s.ID.Validate(), s.Status.Validate())
	if err := s.DonationID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("donationID", err))
	}
	if err := s.CenterID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("centerID", err))
	}
	itemName := strings.TrimSpace(s.ItemName)
	if itemName == "" {
		errList = append(errList, ErrItemNameIsRequired)
	}
	if s.Quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", s.Quantity)))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Waste{
		id:         s.ID,
		donationID: s.DonationID,
		centerID:   s.CenterID,
		itemName:   itemName,
		quantity:   s.Quantity,
		unit:       kernel.ParseUnit(string(s.Unit)),
		recordedAt: s.RecordedAt,
		status:     s.Status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrWasteIsNotConstructed for a nil or zero-value record.
func (w *Waste) Validate() error {
	if w == nil {
		return ErrWasteIsNotConstructed
	}
	return w.guard.Validate(ErrWasteIsNotConstructed)
}

// ID returns the waste record identifier.
func (w *Waste) ID() kernel.UUID { return w.id }

// DonationID returns the source donation.
func (w *Waste) DonationID() kernel.UUID { return w.donationID }

// CenterID returns the center that recorded the waste.
func (w *Waste) CenterID() kernel.UUID { return w.centerID }

// ItemName returns what was written off.
func (w *Waste) ItemName() string { return w.itemName }

// Quantity returns the amount written off.
func (w *Waste) Quantity() int { return w.quantity }

// Unit returns the measurement unit.
func (w *Waste) Unit() kernel.Unit { return w.unit }

// RecordedAt returns when the waste was recorded.
func (w *Waste) RecordedAt() time.Time { return w.recordedAt }

// Status returns PENDING or PROCESSED.
func (w *Waste) Status() Status { return w.status }

// Snapshot copies the record for persistence.
func (w *Waste) Snapshot() Snapshot {
	return Snapshot{
		ID:         w.id,
		DonationID: w.donationID,
		CenterID:   w.centerID,
		ItemName:   w.itemName,
		Quantity:   w.quantity,
		Unit:       w.unit,
		RecordedAt: w.recordedAt,
		Status:     w.status,
	}
}

// Process marks the write-off as disposed of. PROCESSED is terminal.
func (w *Waste) Process() error {
	if w.status != Pending {
		return errs.NewInvalidStateError("waste", w.status.String(), "process")
	}
	w.status = Processed
	return nil
}

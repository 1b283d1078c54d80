package commands

import (
	"errors"
	"fmt"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var ErrRecordWasteCommandIsNotConstructed = errors.New(
	"RecordWasteCommand must be created via NewRecordWasteCommand constructor",
)

// RecordWasteCommand writes off part of a donation. Empty itemName and unit
// are taken from the donation.
type RecordWasteCommand struct {
	principal  kernel.Principal
	wasteID    kernel.UUID
	donationID kernel.UUID
	itemName   string
	quantity   int
	unit       kernel.Unit
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewRecordWasteCommand validates the IDs and the quantity. A zero
// recordedAt means "now".
func NewRecordWasteCommand(
	principal kernel.Principal,
	wasteID, donationID kernel.UUID,
	itemName string,
	quantity int,
	unit kernel.Unit,
	recordedAt time.Time,
) (RecordWasteCommand, error) {
	var errList []error
	errList = append(errList,
		principal.Validate(),
		requireID("wasteID", wasteID),
		requireID("donationID", donationID),
	)
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if err := errors.Join(errList...); err != nil {
		return RecordWasteCommand{}, err
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	return RecordWasteCommand{
		principal:  principal,
		wasteID:    wasteID,
		donationID: donationID,
		itemName:   itemName,
		quantity:   quantity,
		unit:       unit,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewRecordWasteCommand.
func (c RecordWasteCommand) Validate() error {
	return c.guard.Validate(ErrRecordWasteCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c RecordWasteCommand) Principal() kernel.Principal { return c.principal }

// WasteID returns the ID of the waste record.
func (c RecordWasteCommand) WasteID() kernel.UUID { return c.wasteID }

// DonationID returns the ID of the donation.
func (c RecordWasteCommand) DonationID() kernel.UUID { return c.donationID }

// ItemName returns the wasted item name.
func (c RecordWasteCommand) ItemName() string { return c.itemName }

// Quantity returns the quantity in Unit.
func (c RecordWasteCommand) Quantity() int { return c.quantity }

// Unit returns the unit of Quantity.
func (c RecordWasteCommand) Unit() kernel.Unit { return c.unit }

// RecordedAt returns when the waste was recorded.
func (c RecordWasteCommand) RecordedAt() time.Time { return c.recordedAt }

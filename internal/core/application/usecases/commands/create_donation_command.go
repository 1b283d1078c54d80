package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var ErrCreateDonationCommandIsNotConstructed = errors.New(
	"CreateDonationCommand must be created via NewCreateDonationCommand constructor",
)

// CreateDonationCommand records a new PENDING donation. When a center is
// given, the donation is linked to it right away and occupies its capacity.
type CreateDonationCommand struct {
	principal  kernel.Principal
	donationID kernel.UUID
	donorID    kernel.UUID
	itemName   string
	quantity   int
	unit       kernel.Unit
	donatedAt  time.Time
	centerID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateDonationCommand builds the command. A zero donatedAt means "now".
func NewCreateDonationCommand(
	principal kernel.Principal,
	donationID, donorID kernel.UUID,
	itemName string,
	quantity int,
	unit kernel.Unit,
	donatedAt time.Time,
	centerID *kernel.UUID,
) (CreateDonationCommand, error) {
	var errList []error
	errList = append(errList,
		principal.Validate(),
		requireID("donationID", donationID),
		requireID("donorID", donorID),
		optionalID("centerID", centerID),
	)
	if strings.TrimSpace(itemName) == "" {
		errList = append(errList, donation.ErrItemNameIsRequired)
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if unit == "" {
		errList = append(errList, donation.ErrUnitIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return CreateDonationCommand{}, err
	}

	if donatedAt.IsZero() {
		donatedAt = time.Now().UTC()
	}

	return CreateDonationCommand{
		principal:  principal,
		donationID: donationID,
		donorID:    donorID,
		itemName:   itemName,
		quantity:   quantity,
		unit:       unit,
		donatedAt:  donatedAt,
		centerID:   copyID(centerID),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewCreateDonationCommand.
func (c CreateDonationCommand) Validate() error {
	return c.guard.Validate(ErrCreateDonationCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c CreateDonationCommand) Principal() kernel.Principal { return c.principal }

// DonationID returns the ID of the donation.
func (c CreateDonationCommand) DonationID() kernel.UUID { return c.donationID }

// DonorID returns the ID of the donor.
func (c CreateDonationCommand) DonorID() kernel.UUID { return c.donorID }

// ItemName returns the donated item name.
func (c CreateDonationCommand) ItemName() string { return c.itemName }

// Quantity returns the quantity in Unit.
func (c CreateDonationCommand) Quantity() int { return c.quantity }

// Unit returns the unit of Quantity.
func (c CreateDonationCommand) Unit() kernel.Unit { return c.unit }

// DonatedAt returns when the goods were handed over.
func (c CreateDonationCommand) DonatedAt() time.Time { return c.donatedAt }

// CenterID returns the collection center the command targets.
func (c CreateDonationCommand) CenterID() *kernel.UUID { return copyID(c.centerID) }

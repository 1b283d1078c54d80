package commands

import (
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrDonationActionCommandIsNotConstructed = errors.New(
	"DonationActionCommand must be created via NewDonationActionCommand constructor",
)

// DonationActionCommand names a donation a principal wants to act on. It is
// shared by the accept, reject, process and delete handlers.
type DonationActionCommand struct {
	principal  kernel.Principal
	donationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDonationActionCommand validates the principal and the donation ID.
func NewDonationActionCommand(principal kernel.Principal, donationID kernel.UUID) (DonationActionCommand, error) {
	if err := errors.Join(principal.Validate(), requireID("donationID", donationID)); err != nil {
		return DonationActionCommand{}, err
	}

	return DonationActionCommand{
		principal:  principal,
		donationID: donationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewDonationActionCommand.
func (c DonationActionCommand) Validate() error {
	return c.guard.Validate(ErrDonationActionCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c DonationActionCommand) Principal() kernel.Principal { return c.principal }

// DonationID returns the ID of the donation.
func (c DonationActionCommand) DonationID() kernel.UUID { return c.donationID }

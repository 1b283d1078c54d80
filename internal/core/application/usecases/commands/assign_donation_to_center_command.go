package commands

import (
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrAssignDonationToCenterCommandIsNotConstructed = errors.New(
	"AssignDonationToCenterCommand must be created via NewAssignDonationToCenterCommand constructor",
)

// AssignDonationToCenterCommand links a PENDING or COLLECTED donation to a
// collection center, moving it off its previous center if it had one.
type AssignDonationToCenterCommand struct {
	principal  kernel.Principal
	donationID kernel.UUID
	centerID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDonationToCenterCommand validates the principal and both IDs.
func NewAssignDonationToCenterCommand(
	principal kernel.Principal,
	donationID, centerID kernel.UUID,
) (AssignDonationToCenterCommand, error) {
	if err := errors.Join(
		principal.Validate(),
		requireID("donationID", donationID),
		requireID("centerID", centerID),
	); err != nil {
		return AssignDonationToCenterCommand{}, err
	}

	return AssignDonationToCenterCommand{
		principal:  principal,
		donationID: donationID,
		centerID:   centerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewAssignDonationToCenterCommand.
func (c AssignDonationToCenterCommand) Validate() error {
	return c.guard.Validate(ErrAssignDonationToCenterCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c AssignDonationToCenterCommand) Principal() kernel.Principal { return c.principal }

// DonationID returns the ID of the donation.
func (c AssignDonationToCenterCommand) DonationID() kernel.UUID { return c.donationID }

// CenterID returns the collection center the command targets.
func (c AssignDonationToCenterCommand) CenterID() kernel.UUID { return c.centerID }

package commands

import (
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrDeleteDonorCommandIsNotConstructed = errors.New(
	"DeleteDonorCommand must be created via NewDeleteDonorCommand constructor",
)

// DeleteDonorCommand removes a donor and its donations.
type DeleteDonorCommand struct {
	principal kernel.Principal
	donorID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteDonorCommand validates the principal and the donor ID.
func NewDeleteDonorCommand(principal kernel.Principal, donorID kernel.UUID) (DeleteDonorCommand, error) {
	if err := errors.Join(principal.Validate(), requireID("donorID", donorID)); err != nil {
		return DeleteDonorCommand{}, err
	}

	return DeleteDonorCommand{principal: principal, donorID: donorID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through NewDeleteDonorCommand.
func (c DeleteDonorCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDonorCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c DeleteDonorCommand) Principal() kernel.Principal { return c.principal }

// DonorID returns the ID of the donor.
func (c DeleteDonorCommand) DonorID() kernel.UUID { return c.donorID }

package commands

import (
	"context"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/services"
)

// CreateDonationCommandHandler records donations.
//
// Parameters:
//   - uowFactory: opens the transaction the donation is stored in
//   - access: checks that the caller may donate on behalf of the donor
//   - capacity: reserves room on the chosen center, if any
//
// Example:
//
//	cmd, err := NewCreateDonationCommand(principal, kernel.NewUUID(), donorID, "Bread", 12, kernel.UnitLoaves, time.Time{}, &centerID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("create donation: %w", err)
//	}
type CreateDonationCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
	capacity   services.CapacityTracker
}

// NewCreateDonationCommandHandler creates the handler.
func NewCreateDonationCommandHandler(
	uowFactory UoWFactory,
	access services.AccessPolicy,
	capacity services.CapacityTracker,
) CreateDonationCommandHandler {
	return CreateDonationCommandHandler{uowFactory: uowFactory, access: access, capacity: capacity}
}

// Handle stores the donation as PENDING. When the command names a center, the
// center is locked and the quantity counted on it in the same transaction; a
// full center fails the whole command and nothing is stored.
func (h CreateDonationCommandHandler) Handle(ctx context.Context, cmd CreateDonationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := donation.NewDonation(cmd.DonationID(), cmd.DonorID(), cmd.ItemName(), cmd.Quantity(), cmd.Unit(), cmd.DonatedAt())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	owner, err := uow.DonorRepository().Get(ctx, cmd.DonorID())
	if err != nil {
		return err
	}
	if err = h.access.AuthorizeDonor(cmd.Principal(), owner); err != nil {
		return err
	}

	if id := cmd.CenterID(); id != nil {
		centers := uow.CollectionCenterRepository()
		c, err := centers.GetForUpdate(ctx, *id)
		if err != nil {
			return err
		}
		if err = h.capacity.TryAssign(c, d); err != nil {
			return err
		}
		if err = centers.Update(ctx, c); err != nil {
			return err
		}
	}

	if err = uow.DonationRepository().Add(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

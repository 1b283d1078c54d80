package commands

import (
	"context"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/core/ports"
)

// AssignDonationToCenterCommandHandler moves a donation between centers in a
// single transaction. The quantity is released on the old center and counted
// on the new one, so the load of every center stays equal to the sum of the
// active donations linked to it.
//
// Example:
//
//	cmd, err := NewAssignDonationToCenterCommand(principal, donationID, centerID)
//	if err != nil {
//	    return err
//	}
//	handler := NewAssignDonationToCenterCommandHandler(uowFactory, lifecycle)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("assign donation: %w", err)
//	}
type AssignDonationToCenterCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DonationLifecycle
}

// NewAssignDonationToCenterCommandHandler creates the handler.
func NewAssignDonationToCenterCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.DonationLifecycle,
) AssignDonationToCenterCommandHandler {
	return AssignDonationToCenterCommandHandler{uowFactory: uowFactory, lifecycle: lifecycle}
}

// Handle locks the donation, then both centers in ID order, and lets the
// donation lifecycle decide. Assigning to the center the donation already
// uses is a no-op that still succeeds.
//
// Returns:
//   - a forbidden error when the caller may not touch the donation
//   - an invalid-state error when the donation is past COLLECTED
//   - a capacity error when the target center cannot take the quantity
func (h AssignDonationToCenterCommandHandler) Handle(ctx context.Context, cmd AssignDonationToCenterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := uow.DonationRepository().GetForUpdate(ctx, cmd.DonationID())
	if err != nil {
		return err
	}
	owner, err := uow.DonorRepository().Get(ctx, d.DonorID())
	if err != nil {
		return err
	}

	centers := uow.CollectionCenterRepository()
	from, target, err := lockCenters(ctx, centers, d.CenterID(), cmd.CenterID())
	if err != nil {
		return err
	}

	if err = h.lifecycle.AssignToCenter(cmd.Principal(), owner, d, from, target); err != nil {
		return err
	}

	if from != nil && from != target {
		if err = centers.Update(ctx, from); err != nil {
			return err
		}
	}
	if err = centers.Update(ctx, target); err != nil {
		return err
	}
	if err = uow.DonationRepository().Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// lockCenters locks the current center of a donation (fromID, may be nil) and
// the target center in ID order so that two opposite moves cannot deadlock.
// When both IDs are equal the same aggregate is returned twice.
func lockCenters(
	ctx context.Context,
	repo ports.CollectionCenterRepository,
	fromID *kernel.UUID,
	targetID kernel.UUID,
) (from, target *center.CollectionCenter, err error) {
	switch {
	case fromID == nil:
		target, err = repo.GetForUpdate(ctx, targetID)
		return nil, target, err
	case fromID.IsEqual(targetID):
		target, err = repo.GetForUpdate(ctx, targetID)
		return target, target, err
	case fromID.String() < targetID.String():
		if from, err = repo.GetForUpdate(ctx, *fromID); err != nil {
			return nil, nil, err
		}
		target, err = repo.GetForUpdate(ctx, targetID)
		return from, target, err
	default:
		if target, err = repo.GetForUpdate(ctx, targetID); err != nil {
			return nil, nil, err
		}
		from, err = repo.GetForUpdate(ctx, *fromID)
		return from, target, err
	}
}

package commands

import (
	"context"

	"donations/internal/core/domain/services"
)

// DeleteDonationCommandHandler removes a donation with its deliveries, waste
// records and generated content. Administrators only.
type DeleteDonationCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
	capacity   services.CapacityTracker
}

// NewDeleteDonationCommandHandler creates the handler.
func NewDeleteDonationCommandHandler(
	uowFactory UoWFactory,
	access services.AccessPolicy,
	capacity services.CapacityTracker,
) DeleteDonationCommandHandler {
	return DeleteDonationCommandHandler{uowFactory: uowFactory, access: access, capacity: capacity}
}

// Handle frees the capacity the donation held and releases drivers of its
// active deliveries before deleting everything linked to it.
func (h DeleteDonationCommandHandler) Handle(ctx context.Context, cmd DonationActionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.access.RequireAdmin(cmd.Principal()); err != nil {
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
	c, err := lockLinkedCenter(ctx, uow.CollectionCenterRepository(), d)
	if err != nil {
		return err
	}
	if err = cascadeDeleteDonation(ctx, uow, h.capacity, d, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

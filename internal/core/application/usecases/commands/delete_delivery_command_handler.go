package commands

import (
	"context"

	"donations/internal/core/domain/services"
)

// DeleteDeliveryCommandHandler removes a delivery record. When it was the
// latest delivery of its donation, the donation goes back to COLLECTED.
type DeleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DeliveryLifecycle
}

// NewDeleteDeliveryCommandHandler creates the handler.
func NewDeleteDeliveryCommandHandler(uowFactory UoWFactory, lifecycle services.DeliveryLifecycle) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{uowFactory: uowFactory, lifecycle: lifecycle}
}

// Handle releases the driver of an active delivery before removing it.
func (h DeleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeliveryActionCommand) error {
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

	in, err := loadParticipants(ctx, uow, cmd.DeliveryID())
	if err != nil {
		return err
	}
	latest, err := uow.DeliveryRepository().FindLatestByDonation(ctx, in.Donation.ID())
	if err != nil {
		return err
	}

	if err = h.lifecycle.Remove(cmd.Principal(), in, latest); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Delete(ctx, in.Delivery.ID()); err != nil {
		return err
	}
	if err = uow.DonationRepository().Update(ctx, in.Donation); err != nil {
		return err
	}
	if in.Driver != nil {
		if err = uow.DeliveryPartnerRepository().Update(ctx, in.Driver); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
	"time"

	"donations/internal/core/domain/services"
	"donations/internal/pkg/errs"
)

// CreateDeliveryCommandHandler dispatches a collected donation. The new
// delivery starts ASSIGNED, the donation moves to ASSIGNED and the driver is
// reserved until the delivery completes or is cancelled.
//
// Example:
//
//	cmd, err := NewCreateDeliveryCommand(principal, kernel.NewUUID(), donationID, driverID, recipientID, nil, "")
//	if err != nil {
//	    return err
//	}
//	handler := NewCreateDeliveryCommandHandler(uowFactory, services.NewDeliveryLifecycle(access))
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("create delivery: %w", err)
//	}
type CreateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DeliveryLifecycle
}

// NewCreateDeliveryCommandHandler creates the handler.
func NewCreateDeliveryCommandHandler(uowFactory UoWFactory, lifecycle services.DeliveryLifecycle) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{uowFactory: uowFactory, lifecycle: lifecycle}
}

// Handle locks the donation, its center and the driver, in that order, before
// checking the rules. The donation must be linked to a center; an unlinked one
// is refused with an invalid-state error.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
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
	c, err := lockLinkedCenter(ctx, uow.CollectionCenterRepository(), d)
	if err != nil {
		return err
	}
	if c == nil {
		return errs.NewInvalidStateErrorWithReason("donation", "is not linked to a collection center")
	}
	drv, err := uow.DeliveryPartnerRepository().GetForUpdate(ctx, cmd.DriverID())
	if err != nil {
		return err
	}
	r, err := uow.RecipientRepository().Get(ctx, cmd.RecipientID())
	if err != nil {
		return err
	}
	latest, err := uow.DeliveryRepository().FindLatestByDonation(ctx, d.ID())
	if err != nil {
		return err
	}

	dl, err := h.lifecycle.Create(cmd.Principal(), services.CreateDeliveryParams{
		ID:                  cmd.DeliveryID(),
		Donation:            d,
		Center:              c,
		Driver:              drv,
		Recipient:           r,
		Latest:              latest,
		ScheduledPickupTime: cmd.ScheduledPickupTime(),
		Notes:               cmd.Notes(),
		Now:                 time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Add(ctx, dl); err != nil {
		return err
	}
	if err = uow.DonationRepository().Update(ctx, d); err != nil {
		return err
	}
	if err = uow.DeliveryPartnerRepository().Update(ctx, drv); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

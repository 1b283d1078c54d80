package commands

import (
	"context"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
)

type deliveryTransition func(p kernel.Principal, in services.Participants) error

// PickupDeliveryCommandHandler moves an ASSIGNED delivery to PICKED_UP and
// stamps the pickup time.
type PickupDeliveryCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DeliveryLifecycle
}

// NewPickupDeliveryCommandHandler creates the handler.
func NewPickupDeliveryCommandHandler(uowFactory UoWFactory, lifecycle services.DeliveryLifecycle) PickupDeliveryCommandHandler {
	return PickupDeliveryCommandHandler{uowFactory: uowFactory, lifecycle: lifecycle}
}

// Handle is allowed for the assigned driver, center staff and administrators.
func (h PickupDeliveryCommandHandler) Handle(ctx context.Context, cmd DeliveryActionCommand) error {
	return applyDeliveryTransition(ctx, h.uowFactory, cmd, func(p kernel.Principal, in services.Participants) error {
		return h.lifecycle.Pickup(p, in, time.Now().UTC())
	})
}

// MarkDeliveryInTransitCommandHandler moves a PICKED_UP delivery to IN_TRANSIT.
type MarkDeliveryInTransitCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DeliveryLifecycle
}

func NewMarkDeliveryInTransitCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.DeliveryLifecycle,
) MarkDeliveryInTransitCommandHandler {
	return MarkDeliveryInTransitCommandHandler{uowFactory: uowFactory, lifecycle: lifecycle}
}

func (h MarkDeliveryInTransitCommandHandler) Handle(ctx context.Context, cmd DeliveryActionCommand) error {
	return applyDeliveryTransition(ctx, h.uowFactory, cmd, h.lifecycle.MarkInTransit)
}

// CompleteDeliveryCommandHandler delivers the goods: the delivery and its
// donation become DELIVERED and the driver is available again.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DeliveryLifecycle
}

// NewCompleteDeliveryCommandHandler creates the handler.
func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory, lifecycle services.DeliveryLifecycle) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{uowFactory: uowFactory, lifecycle: lifecycle}
}

// Handle refuses deliveries that were never picked up.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeliveryActionCommand) error {
	return applyDeliveryTransition(ctx, h.uowFactory, cmd, func(p kernel.Principal, in services.Participants) error {
		return h.lifecycle.Complete(p, in, time.Now().UTC())
	})
}

// CancelDeliveryCommandHandler cancels a delivery in any non-terminal status,
// returns the donation to COLLECTED and releases the driver.
type CancelDeliveryCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DeliveryLifecycle
}

func NewCancelDeliveryCommandHandler(uowFactory UoWFactory, lifecycle services.DeliveryLifecycle) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{uowFactory: uowFactory, lifecycle: lifecycle}
}

func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd DeliveryActionCommand) error {
	return applyDeliveryTransition(ctx, h.uowFactory, cmd, h.lifecycle.Cancel)
}

func applyDeliveryTransition(ctx context.Context, uowFactory UoWFactory, cmd DeliveryActionCommand, apply deliveryTransition) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := uowFactory.Create()
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
	if err = apply(cmd.Principal(), in); err != nil {
		return err
	}
	if err = saveParticipants(ctx, uow, in); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"

	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/services"
)

// CreateDeliveryPartnerCommandHandler registers drivers. Staff only.
type CreateDeliveryPartnerCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
}

// NewCreateDeliveryPartnerCommandHandler creates the handler.
func NewCreateDeliveryPartnerCommandHandler(
	uowFactory UoWFactory,
	access services.AccessPolicy,
) CreateDeliveryPartnerCommandHandler {
	return CreateDeliveryPartnerCommandHandler{uowFactory: uowFactory, access: access}
}

// Handle stores a new available driver.
func (h CreateDeliveryPartnerCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryPartnerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.access.RequireStaff(cmd.Principal()); err != nil {
		return err
	}

	drv, err := driver.NewDeliveryPartner(
		cmd.DriverID(),
		cmd.Name(),
		cmd.Phone(),
		cmd.VehicleNumber(),
		cmd.VehicleType(),
		cmd.Username(),
		cmd.CenterID(),
	)
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

	// The home center must exist; the driver does not occupy capacity there.
	if id := cmd.CenterID(); id != nil {
		if _, err = uow.CollectionCenterRepository().Get(ctx, *id); err != nil {
			return err
		}
	}

	if err = uow.DeliveryPartnerRepository().Add(ctx, drv); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

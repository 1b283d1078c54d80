package commands

import (
	"context"

	"donations/internal/core/domain/services"
)

// UpdateCollectionCenterCommandHandler edits a center. Administrators only.
type UpdateCollectionCenterCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
}

// NewUpdateCollectionCenterCommandHandler creates the handler.
func NewUpdateCollectionCenterCommandHandler(
	uowFactory UoWFactory,
	access services.AccessPolicy,
) UpdateCollectionCenterCommandHandler {
	return UpdateCollectionCenterCommandHandler{uowFactory: uowFactory, access: access}
}

// Handle locks the center so the capacity check sees the current load.
func (h UpdateCollectionCenterCommandHandler) Handle(ctx context.Context, cmd UpdateCollectionCenterCommand) error {
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

	repo := uow.CollectionCenterRepository()
	c, err := repo.GetForUpdate(ctx, cmd.CenterID())
	if err != nil {
		return err
	}
	if err = c.UpdateDetails(cmd.Name(), cmd.Location(), cmd.MaxCapacity()); err != nil {
		return err
	}
	c.AssignStaff(cmd.StaffUsername())

	if err = repo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/services"
)

// CreateCollectionCenterCommandHandler registers a center. Administrators only.
type CreateCollectionCenterCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
}

// NewCreateCollectionCenterCommandHandler creates the handler.
func NewCreateCollectionCenterCommandHandler(
	uowFactory UoWFactory,
	access services.AccessPolicy,
) CreateCollectionCenterCommandHandler {
	return CreateCollectionCenterCommandHandler{uowFactory: uowFactory, access: access}
}

// Handle stores a new center with an empty load.
func (h CreateCollectionCenterCommandHandler) Handle(ctx context.Context, cmd CreateCollectionCenterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.access.RequireAdmin(cmd.Principal()); err != nil {
		return err
	}

	c, err := center.NewCollectionCenter(cmd.CenterID(), cmd.Name(), cmd.Location(), cmd.MaxCapacity(), cmd.StaffUsername())
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

	if err = uow.CollectionCenterRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

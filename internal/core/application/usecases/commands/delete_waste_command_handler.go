package commands

import (
	"context"

	"donations/internal/core/domain/services"
)

// DeleteWasteCommandHandler removes a waste record. Administrators only.
type DeleteWasteCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
}

// NewDeleteWasteCommandHandler creates the handler.
func NewDeleteWasteCommandHandler(uowFactory UoWFactory, access services.AccessPolicy) DeleteWasteCommandHandler {
	return DeleteWasteCommandHandler{uowFactory: uowFactory, access: access}
}

func (h DeleteWasteCommandHandler) Handle(ctx context.Context, cmd WasteActionCommand) error {
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

	if err := uow.WasteRepository().Delete(ctx, cmd.WasteID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

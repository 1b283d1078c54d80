package commands

import (
	"context"

	"donations/internal/core/domain/services"
)

// ProcessWasteCommandHandler marks a waste record as processed.
type ProcessWasteCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
}

// NewProcessWasteCommandHandler creates the handler.
func NewProcessWasteCommandHandler(uowFactory UoWFactory, access services.AccessPolicy) ProcessWasteCommandHandler {
	return ProcessWasteCommandHandler{uowFactory: uowFactory, access: access}
}

// Handle is allowed for the staff of the center that recorded the waste.
// Processing twice is an invalid-state error.
func (h ProcessWasteCommandHandler) Handle(ctx context.Context, cmd WasteActionCommand) error {
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

	w, err := uow.WasteRepository().Get(ctx, cmd.WasteID())
	if err != nil {
		return err
	}
	c, err := uow.CollectionCenterRepository().Get(ctx, w.CenterID())
	if err != nil {
		return err
	}
	if err = h.access.AuthorizeCenter(cmd.Principal(), c); err != nil {
		return err
	}

	if err = w.Process(); err != nil {
		return err
	}
	if err = uow.WasteRepository().Update(ctx, w); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

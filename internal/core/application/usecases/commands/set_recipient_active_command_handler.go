package commands

import (
	"context"

	"donations/internal/core/domain/services"
)

// SetRecipientActiveCommandHandler toggles recipients. Staff only.
type SetRecipientActiveCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
}

// NewSetRecipientActiveCommandHandler creates the handler.
func NewSetRecipientActiveCommandHandler(
	uowFactory UoWFactory,
	access services.AccessPolicy,
) SetRecipientActiveCommandHandler {
	return SetRecipientActiveCommandHandler{uowFactory: uowFactory, access: access}
}

func (h SetRecipientActiveCommandHandler) Handle(ctx context.Context, cmd SetRecipientActiveCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.access.RequireStaff(cmd.Principal()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RecipientRepository()
	r, err := repo.Get(ctx, cmd.RecipientID())
	if err != nil {
		return err
	}
	if cmd.Active() {
		r.Activate()
	} else {
		r.Deactivate()
	}
	if err = repo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

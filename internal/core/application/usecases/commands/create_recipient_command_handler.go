package commands

import (
	"context"

	"donations/internal/core/domain/model/recipient"
	"donations/internal/core/domain/services"
)

// CreateRecipientCommandHandler registers recipients.
type CreateRecipientCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
}

// NewCreateRecipientCommandHandler creates the handler.
func NewCreateRecipientCommandHandler(uowFactory UoWFactory, access services.AccessPolicy) CreateRecipientCommandHandler {
	return CreateRecipientCommandHandler{uowFactory: uowFactory, access: access}
}

// Handle stores an active recipient.
func (h CreateRecipientCommandHandler) Handle(ctx context.Context, cmd CreateRecipientCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.access.RequireStaff(cmd.Principal()); err != nil {
		return err
	}

	// Name and address are checked by the aggregate constructor.
	r, err := recipient.NewRecipient(cmd.RecipientID(), cmd.Name(), cmd.Type(), cmd.Address(), cmd.Contact())
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

	if err = uow.RecipientRepository().Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

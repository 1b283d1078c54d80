package commands

import (
	"context"

	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/pkg/errs"
)

// CreateDonorCommandHandler registers donors.
type CreateDonorCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
}

// NewCreateDonorCommandHandler creates the handler.
func NewCreateDonorCommandHandler(uowFactory UoWFactory, access services.AccessPolicy) CreateDonorCommandHandler {
	return CreateDonorCommandHandler{uowFactory: uowFactory, access: access}
}

// Handle stores the donor. Staff may register anyone; a DONOR principal may
// only register the record carrying its own username.
func (h CreateDonorCommandHandler) Handle(ctx context.Context, cmd CreateDonorCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p := cmd.Principal()
	selfRegistration := p.HasRole(kernel.RoleDonor) && cmd.Username() == p.Username()
	if err := h.access.RequireStaff(p); err != nil && !selfRegistration {
		return errs.NewForbiddenError(p.Username(), "may only register its own donor record")
	}

	d, err := donor.NewDonor(cmd.DonorID(), cmd.Name(), cmd.Contact(), cmd.Location(), cmd.DonorType(), cmd.Username())
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

	if err = uow.DonorRepository().Add(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

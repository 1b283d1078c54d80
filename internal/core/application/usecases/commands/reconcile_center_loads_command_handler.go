package commands

import (
	"context"
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/core/ports"
	"donations/internal/pkg/guard"
)

var ErrReconcileCenterLoadsCommandIsNotConstructed = errors.New(
	"ReconcileCenterLoadsCommand must be created via NewReconcileCenterLoadsCommand constructor",
)

// ReconcileCenterLoadsCommand recomputes every center's load from the
// donations linked to it.
type ReconcileCenterLoadsCommand struct {
	principal kernel.Principal

	guard guard.ConstructorGuard
}

// NewReconcileCenterLoadsCommand validates the principal.
func NewReconcileCenterLoadsCommand(principal kernel.Principal) (ReconcileCenterLoadsCommand, error) {
	if err := principal.Validate(); err != nil {
		return ReconcileCenterLoadsCommand{}, err
	}
	return ReconcileCenterLoadsCommand{principal: principal, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through NewReconcileCenterLoadsCommand.
func (c ReconcileCenterLoadsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileCenterLoadsCommandIsNotConstructed)
}

// Principal returns the caller; only administrators may reconcile.
func (c ReconcileCenterLoadsCommand) Principal() kernel.Principal { return c.principal }

// ReconcileCenterLoadsCommandHandler repairs center loads that drifted from
// the donations linked to them. It is run by the reconciliation job and on
// demand by administrators.
type ReconcileCenterLoadsCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
}

// NewReconcileCenterLoadsCommandHandler creates the handler.
func NewReconcileCenterLoadsCommandHandler(
	uowFactory UoWFactory,
	access services.AccessPolicy,
) ReconcileCenterLoadsCommandHandler {
	return ReconcileCenterLoadsCommandHandler{uowFactory: uowFactory, access: access}
}

// Handle returns how many centers had a drifted load.
func (h ReconcileCenterLoadsCommandHandler) Handle(ctx context.Context, cmd ReconcileCenterLoadsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	if err := h.access.RequireAdmin(cmd.Principal()); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	centers := uow.CollectionCenterRepository()
	all, err := centers.List(ctx)
	if err != nil {
		return 0, err
	}

	corrected := 0
	for _, listed := range all {
		c, err := centers.GetForUpdate(ctx, listed.ID())
		if err != nil {
			return 0, err
		}
		centerID := c.ID()
		linked, err := uow.DonationRepository().Find(ctx, ports.DonationFilter{CenterID: &centerID})
		if err != nil {
			return 0, err
		}

		load := services.LinkedLoad(c, linked)
		if load == c.CurrentLoad() {
			continue
		}
		if err = c.Reconcile(load); err != nil {
			return 0, err
		}
		if err = centers.Update(ctx, c); err != nil {
			return 0, err
		}
		corrected++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return corrected, nil
}

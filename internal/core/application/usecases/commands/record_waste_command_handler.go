package commands

import (
	"context"

	"donations/internal/core/domain/model/waste"
	"donations/internal/core/domain/services"
	"donations/internal/pkg/errs"
)

// RecordWasteCommandHandler writes off part of a donation at the center that
// holds it.
type RecordWasteCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
}

// NewRecordWasteCommandHandler creates the handler.
func NewRecordWasteCommandHandler(uowFactory UoWFactory, access services.AccessPolicy) RecordWasteCommandHandler {
	return RecordWasteCommandHandler{uowFactory: uowFactory, access: access}
}

// Handle locks the donation and stores the waste record against its center.
// An unlinked donation cannot have waste recorded.
func (h RecordWasteCommandHandler) Handle(ctx context.Context, cmd RecordWasteCommand) error {
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

	d, err := uow.DonationRepository().GetForUpdate(ctx, cmd.DonationID())
	if err != nil {
		return err
	}
	centerID := d.CenterID()
	if centerID == nil {
		return errs.NewInvalidStateErrorWithReason("donation", "is not linked to a collection center")
	}
	c, err := uow.CollectionCenterRepository().Get(ctx, *centerID)
	if err != nil {
		return err
	}
	if err = h.access.AuthorizeCenter(cmd.Principal(), c); err != nil {
		return err
	}

	itemName, unit := cmd.ItemName(), cmd.Unit()
	if itemName == "" {
		itemName = d.ItemName()
	}
	if unit == "" {
		unit = d.Unit()
	}

	w, err := waste.NewWaste(cmd.WasteID(), d.ID(), c.ID(), itemName, cmd.Quantity(), unit, cmd.RecordedAt())
	if err != nil {
		return err
	}
	if err = uow.WasteRepository().Add(ctx, w); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
)

type donationTransition func(p kernel.Principal, c *center.CollectionCenter, d *donation.Donation) error

// AcceptDonationCommandHandler moves a PENDING donation to COLLECTED.
type AcceptDonationCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DonationLifecycle
}

// NewAcceptDonationCommandHandler creates the handler.
func NewAcceptDonationCommandHandler(uowFactory UoWFactory, lifecycle services.DonationLifecycle) AcceptDonationCommandHandler {
	return AcceptDonationCommandHandler{uowFactory: uowFactory, lifecycle: lifecycle}
}

// Handle locks the donation and then its center. Only the staff of the linked
// center or an administrator may accept.
func (h AcceptDonationCommandHandler) Handle(ctx context.Context, cmd DonationActionCommand) error {
	return applyDonationTransition(ctx, h.uowFactory, cmd, h.lifecycle.Accept)
}

// RejectDonationCommandHandler moves a PENDING donation to REJECTED and frees
// the capacity it held.
type RejectDonationCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DonationLifecycle
}

func NewRejectDonationCommandHandler(uowFactory UoWFactory, lifecycle services.DonationLifecycle) RejectDonationCommandHandler {
	return RejectDonationCommandHandler{uowFactory: uowFactory, lifecycle: lifecycle}
}

func (h RejectDonationCommandHandler) Handle(ctx context.Context, cmd DonationActionCommand) error {
	return applyDonationTransition(ctx, h.uowFactory, cmd, h.lifecycle.Reject)
}

// ProcessDonationCommandHandler closes a DELIVERED donation.
type ProcessDonationCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DonationLifecycle
}

func NewProcessDonationCommandHandler(uowFactory UoWFactory, lifecycle services.DonationLifecycle) ProcessDonationCommandHandler {
	return ProcessDonationCommandHandler{uowFactory: uowFactory, lifecycle: lifecycle}
}

func (h ProcessDonationCommandHandler) Handle(ctx context.Context, cmd DonationActionCommand) error {
	return applyDonationTransition(ctx, h.uowFactory, cmd, h.lifecycle.Process)
}

func applyDonationTransition(ctx context.Context, uowFactory UoWFactory, cmd DonationActionCommand, apply donationTransition) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := uowFactory.Create()
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
	c, err := lockLinkedCenter(ctx, uow.CollectionCenterRepository(), d)
	if err != nil {
		return err
	}

	if err = apply(cmd.Principal(), c, d); err != nil {
		return err
	}

	if c != nil {
		if err = uow.CollectionCenterRepository().Update(ctx, c); err != nil {
			return err
		}
	}
	if err = uow.DonationRepository().Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

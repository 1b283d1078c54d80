package commands

import (
	"context"
	"slices"
	"strings"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/services"
	"donations/internal/core/ports"
)

// DeleteDonorCommandHandler removes a donor and cascades to every donation it
// made. Administrators only.
type DeleteDonorCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
	capacity   services.CapacityTracker
}

// NewDeleteDonorCommandHandler creates the handler.
func NewDeleteDonorCommandHandler(
	uowFactory UoWFactory,
	access services.AccessPolicy,
	capacity services.CapacityTracker,
) DeleteDonorCommandHandler {
	return DeleteDonorCommandHandler{uowFactory: uowFactory, access: access, capacity: capacity}
}

// Handle locks every donation of the donor in ID order, then every center
// they use in ID order, and cascades each donation before dropping the donor.
func (h DeleteDonorCommandHandler) Handle(ctx context.Context, cmd DeleteDonorCommand) error {
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

	d, err := uow.DonorRepository().Get(ctx, cmd.DonorID())
	if err != nil {
		return err
	}

	donorID := d.ID()
	found, err := uow.DonationRepository().Find(ctx, ports.DonationFilter{DonorID: &donorID})
	if err != nil {
		return err
	}
	slices.SortFunc(found, func(a, b *donation.Donation) int {
		return strings.Compare(a.ID().String(), b.ID().String())
	})

	donations := make([]*donation.Donation, 0, len(found))
	for _, listed := range found {
		dn, err := uow.DonationRepository().GetForUpdate(ctx, listed.ID())
		if err != nil {
			return err
		}
		donations = append(donations, dn)
	}
	centers, err := lockCentersInOrder(ctx, uow.CollectionCenterRepository(), donations)
	if err != nil {
		return err
	}

	for _, dn := range donations {
		var c *center.CollectionCenter
		if id := dn.CenterID(); id != nil {
			c = centers[*id]
		}
		if err = cascadeDeleteDonation(ctx, uow, h.capacity, dn, c); err != nil {
			return err
		}
	}

	if err = uow.DonorRepository().Delete(ctx, donorID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

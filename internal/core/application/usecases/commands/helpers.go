package commands

import (
	"context"
	"slices"
	"strings"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/core/ports"
	"donations/internal/pkg/errs"
)

func requireID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}

func optionalID(name string, id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return requireID(name, *id)
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

// lockLinkedCenter locks the center d is linked to. It returns nil when d is unlinked.
func lockLinkedCenter(ctx context.Context, repo ports.CollectionCenterRepository, d *donation.Donation) (*center.CollectionCenter, error) {
	id := d.CenterID()
	if id == nil {
		return nil, nil
	}
	return repo.GetForUpdate(ctx, *id)
}

// loadParticipants loads a delivery together with its donation, origin center
// and driver. The donation is locked before the delivery and the driver after
// them, the same order every other handler takes.
func loadParticipants(ctx context.Context, uow UoW, deliveryID kernel.UUID) (services.Participants, error) {
	unlocked, err := uow.DeliveryRepository().Get(ctx, deliveryID)
	if err != nil {
		return services.Participants{}, err
	}
	d, err := uow.DonationRepository().GetForUpdate(ctx, unlocked.DonationID())
	if err != nil {
		return services.Participants{}, err
	}
	dl, err := uow.DeliveryRepository().GetForUpdate(ctx, deliveryID)
	if err != nil {
		return services.Participants{}, err
	}
	c, err := uow.CollectionCenterRepository().Get(ctx, dl.FromCenterID())
	if err != nil {
		return services.Participants{}, err
	}

	var drv *driver.DeliveryPartner
	if id := dl.DriverID(); id != nil {
		if drv, err = uow.DeliveryPartnerRepository().GetForUpdate(ctx, *id); err != nil {
			return services.Participants{}, err
		}
	}

	return services.Participants{Delivery: dl, Donation: d, Center: c, Driver: drv}, nil
}

func saveParticipants(ctx context.Context, uow UoW, in services.Participants) error {
	if err := uow.DeliveryRepository().Update(ctx, in.Delivery); err != nil {
		return err
	}
	if err := uow.DonationRepository().Update(ctx, in.Donation); err != nil {
		return err
	}
	if in.Driver != nil {
		return uow.DeliveryPartnerRepository().Update(ctx, in.Driver)
	}
	return nil
}

// lockCentersInOrder locks every center referenced by donations, sorted by ID.
// The result is keyed by center ID.
func lockCentersInOrder(
	ctx context.Context,
	repo ports.CollectionCenterRepository,
	donations []*donation.Donation,
) (map[kernel.UUID]*center.CollectionCenter, error) {
	ids := make([]kernel.UUID, 0, len(donations))
	for _, d := range donations {
		if id := d.CenterID(); id != nil && !slices.Contains(ids, *id) {
			ids = append(ids, *id)
		}
	}
	slices.SortFunc(ids, func(a, b kernel.UUID) int {
		return strings.Compare(a.String(), b.String())
	})

	locked := make(map[kernel.UUID]*center.CollectionCenter, len(ids))
	for _, id := range ids {
		c, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = c
	}
	return locked, nil
}

// cascadeDeleteDonation removes a locked donation and everything that hangs
// off it: its deliveries (releasing a driver still held by an active one),
// waste records, generated content and the capacity it occupies in c. The
// caller has already locked c, which is nil for an unlinked donation.
func cascadeDeleteDonation(
	ctx context.Context,
	uow UoW,
	tracker services.CapacityTracker,
	d *donation.Donation,
	c *center.CollectionCenter,
) error {
	donationID := d.ID()

	if c != nil {
		if err := tracker.Release(c, d); err != nil {
			return err
		}
		if err := uow.CollectionCenterRepository().Update(ctx, c); err != nil {
			return err
		}
	}

	deliveries, err := uow.DeliveryRepository().Find(ctx, ports.DeliveryFilter{DonationID: &donationID})
	if err != nil {
		return err
	}
	for _, dl := range deliveries {
		if driverID := dl.DriverID(); dl.IsActive() && driverID != nil {
			drv, err := uow.DeliveryPartnerRepository().GetForUpdate(ctx, *driverID)
			if err != nil {
				return err
			}
			drv.Release()
			if err = uow.DeliveryPartnerRepository().Update(ctx, drv); err != nil {
				return err
			}
		}
		if err = uow.DeliveryRepository().Delete(ctx, dl.ID()); err != nil {
			return err
		}
	}

	wastes, err := uow.WasteRepository().Find(ctx, ports.WasteFilter{DonationID: &donationID})
	if err != nil {
		return err
	}
	for _, w := range wastes {
		if err = uow.WasteRepository().Delete(ctx, w.ID()); err != nil {
			return err
		}
	}

	if err = uow.ContentRepository().DeleteByDonation(ctx, donationID); err != nil {
		return err
	}

	return uow.DonationRepository().Delete(ctx, donationID)
}

package memory

import (
	"context"
	"time"

	"donations/internal/core/domain/model/content"
	"donations/internal/core/domain/model/delivery"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/waste"
	"donations/internal/core/ports"
	"donations/internal/pkg/errs"
)

type donationRepo struct{ uow *UnitOfWork }

func (r donationRepo) Add(_ context.Context, aggregate *donation.Donation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if err = insert(s, s.donations, aggregate.ID(), aggregate.Snapshot()); err != nil {
		return err
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r donationRepo) Update(_ context.Context, aggregate *donation.Donation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if !replace(s.donations, aggregate.ID(), aggregate.Snapshot()) {
		return errs.NewObjectNotFoundError("donation", aggregate.ID().String())
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r donationRepo) Get(_ context.Context, id kernel.UUID) (*donation.Donation, error) {
	row, ok := r.uow.read().donations[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("donation", id.String())
	}
	return donation.Restore(row.snap)
}

// GetForUpdate is Get: the unit of work holds the store-wide lock.
func (r donationRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	return r.Get(ctx, id)
}

func (r donationRepo) Find(_ context.Context, filter ports.DonationFilter) ([]*donation.Donation, error) {
	keep := func(s donation.Snapshot) bool {
		return (filter.Status == nil || s.Status == *filter.Status) &&
			(filter.DonorID == nil || s.DonorID.IsEqual(*filter.DonorID)) &&
			(filter.CenterID == nil || kernel.SameRef(s.CenterID, *filter.CenterID))
	}
	return restoreAll(selectRows(r.uow.read().donations, keep,
		newestFirst(func(s donation.Snapshot) time.Time { return s.DonatedAt })), donation.Restore)
}

func (r donationRepo) Delete(_ context.Context, id kernel.UUID) error {
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if _, ok := s.donations[id]; !ok {
		return errs.NewObjectNotFoundError("donation", id.String())
	}
	delete(s.donations, id)
	return nil
}

type deliveryRepo struct{ uow *UnitOfWork }

func (r deliveryRepo) Add(_ context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if err = insert(s, s.deliveries, aggregate.ID(), aggregate.Snapshot()); err != nil {
		return err
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r deliveryRepo) Update(_ context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if !replace(s.deliveries, aggregate.ID(), aggregate.Snapshot()) {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r deliveryRepo) Get(_ context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	row, ok := r.uow.read().deliveries[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", id.String())
	}
	return delivery.Restore(row.snap)
}

func (r deliveryRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.Get(ctx, id)
}

func (r deliveryRepo) Find(_ context.Context, filter ports.DeliveryFilter) ([]*delivery.Delivery, error) {
	keep := func(s delivery.Snapshot) bool {
		return (filter.DonationID == nil || s.DonationID.IsEqual(*filter.DonationID)) &&
			(filter.DriverID == nil || kernel.SameRef(s.DriverID, *filter.DriverID)) &&
			(filter.CenterID == nil || s.FromCenterID.IsEqual(*filter.CenterID)) &&
			(filter.Status == nil || s.Status == *filter.Status)
	}
	return restoreAll(selectRows(r.uow.read().deliveries, keep, deliveriesNewestFirst), delivery.Restore)
}

func (r deliveryRepo) FindLatestByDonation(_ context.Context, donationID kernel.UUID) (*delivery.Delivery, error) {
	found := selectRows(r.uow.read().deliveries,
		func(s delivery.Snapshot) bool { return s.DonationID.IsEqual(donationID) },
		deliveriesNewestFirst)
	if len(found) == 0 {
		return nil, nil
	}
	return delivery.Restore(found[0])
}

func (r deliveryRepo) Delete(_ context.Context, id kernel.UUID) error {
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if _, ok := s.deliveries[id]; !ok {
		return errs.NewObjectNotFoundError("delivery", id.String())
	}
	delete(s.deliveries, id)
	return nil
}

var deliveriesNewestFirst = newestFirst(func(s delivery.Snapshot) time.Time { return s.CreatedAt })

type wasteRepo struct{ uow *UnitOfWork }

func (r wasteRepo) Add(_ context.Context, aggregate *waste.Waste) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if err = insert(s, s.wastes, aggregate.ID(), aggregate.Snapshot()); err != nil {
		return err
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r wasteRepo) Update(_ context.Context, aggregate *waste.Waste) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if !replace(s.wastes, aggregate.ID(), aggregate.Snapshot()) {
		return errs.NewObjectNotFoundError("waste", aggregate.ID().String())
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r wasteRepo) Get(_ context.Context, id kernel.UUID) (*waste.Waste, error) {
	row, ok := r.uow.read().wastes[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("waste", id.String())
	}
	return waste.Restore(row.snap)
}

func (r wasteRepo) Find(_ context.Context, filter ports.WasteFilter) ([]*waste.Waste, error) {
	keep := func(s waste.Snapshot) bool {
		return (filter.DonationID == nil || s.DonationID.IsEqual(*filter.DonationID)) &&
			(filter.CenterID == nil || s.CenterID.IsEqual(*filter.CenterID)) &&
			(filter.Status == nil || s.Status == *filter.Status)
	}
	return restoreAll(selectRows(r.uow.read().wastes, keep,
		newestFirst(func(s waste.Snapshot) time.Time { return s.RecordedAt })), waste.Restore)
}

func (r wasteRepo) Delete(_ context.Context, id kernel.UUID) error {
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if _, ok := s.wastes[id]; !ok {
		return errs.NewObjectNotFoundError("waste", id.String())
	}
	delete(s.wastes, id)
	return nil
}

type contentRepo struct{ uow *UnitOfWork }

// Add enforces the one-record-per-(donation, type) rule.
func (r contentRepo) Add(_ context.Context, aggregate *content.GeneratedContent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	for _, row := range s.contents {
		if row.snap.DonationID.IsEqual(aggregate.DonationID()) && row.snap.Type == aggregate.Type() {
			return ErrDuplicateKey
		}
	}
	if err = insert(s, s.contents, aggregate.ID(), aggregate.Snapshot()); err != nil {
		return err
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r contentRepo) GetByDonationAndType(
	_ context.Context,
	donationID kernel.UUID,
	contentType content.Type,
) (*content.GeneratedContent, error) {
	for _, row := range r.uow.read().contents {
		if row.snap.DonationID.IsEqual(donationID) && row.snap.Type == contentType {
			return content.Restore(row.snap)
		}
	}
	return nil, errs.NewObjectNotFoundError("generated content", donationID.String()+"/"+string(contentType))
}

func (r contentRepo) ListByDonor(
	_ context.Context,
	donorID kernel.UUID,
	contentType content.Type,
	limit int,
) ([]*content.GeneratedContent, error) {
	found := selectRows(r.uow.read().contents,
		func(s content.Snapshot) bool { return s.Source.DonorID.IsEqual(donorID) && s.Type == contentType },
		newestFirst(func(s content.Snapshot) time.Time { return s.GeneratedAt }))
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return restoreAll(found, content.Restore)
}

func (r contentRepo) DeleteByDonation(_ context.Context, donationID kernel.UUID) error {
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	for id, row := range s.contents {
		if row.snap.DonationID.IsEqual(donationID) {
			delete(s.contents, id)
		}
	}
	return nil
}

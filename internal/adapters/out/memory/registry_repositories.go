package memory

import (
	"context"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/recipient"
	"donations/internal/pkg/errs"
)

type donorRepo struct{ uow *UnitOfWork }

func (r donorRepo) Add(_ context.Context, aggregate *donor.Donor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if err = insert(s, s.donors, aggregate.ID(), aggregate.Snapshot()); err != nil {
		return err
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r donorRepo) Get(_ context.Context, id kernel.UUID) (*donor.Donor, error) {
	row, ok := r.uow.read().donors[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("donor", id.String())
	}
	return donor.Restore(row.snap)
}

func (r donorRepo) GetByUsername(_ context.Context, username string) (*donor.Donor, error) {
	found := selectRows(r.uow.read().donors,
		func(s donor.Snapshot) bool { return username != "" && s.Username == username },
		byName(func(s donor.Snapshot) string { return s.Name }))
	if len(found) == 0 {
		return nil, errs.NewObjectNotFoundError("donor", username)
	}
	return donor.Restore(found[0])
}

func (r donorRepo) List(_ context.Context) ([]*donor.Donor, error) {
	return restoreAll(selectRows(r.uow.read().donors, nil,
		byName(func(s donor.Snapshot) string { return s.Name })), donor.Restore)
}

func (r donorRepo) Delete(_ context.Context, id kernel.UUID) error {
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if _, ok := s.donors[id]; !ok {
		return errs.NewObjectNotFoundError("donor", id.String())
	}
	delete(s.donors, id)
	return nil
}

type centerRepo struct{ uow *UnitOfWork }

func (r centerRepo) Add(_ context.Context, aggregate *center.CollectionCenter) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if err = insert(s, s.centers, aggregate.ID(), aggregate.Snapshot()); err != nil {
		return err
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r centerRepo) Update(_ context.Context, aggregate *center.CollectionCenter) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if !replace(s.centers, aggregate.ID(), aggregate.Snapshot()) {
		return errs.NewObjectNotFoundError("collection center", aggregate.ID().String())
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r centerRepo) Get(_ context.Context, id kernel.UUID) (*center.CollectionCenter, error) {
	row, ok := r.uow.read().centers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("collection center", id.String())
	}
	return center.Restore(row.snap)
}

// GetForUpdate needs no extra locking: the unit of work already holds the
// store-wide lock.
func (r centerRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*center.CollectionCenter, error) {
	return r.Get(ctx, id)
}

func (r centerRepo) GetByStaffUsername(_ context.Context, username string) (*center.CollectionCenter, error) {
	found := selectRows(r.uow.read().centers,
		func(s center.Snapshot) bool { return username != "" && s.StaffUsername == username },
		byName(func(s center.Snapshot) string { return s.Name }))
	if len(found) == 0 {
		return nil, errs.NewObjectNotFoundError("collection center", username)
	}
	return center.Restore(found[0])
}

func (r centerRepo) List(_ context.Context) ([]*center.CollectionCenter, error) {
	return restoreAll(selectRows(r.uow.read().centers, nil,
		byName(func(s center.Snapshot) string { return s.Name })), center.Restore)
}

type driverRepo struct{ uow *UnitOfWork }

func (r driverRepo) Add(_ context.Context, aggregate *driver.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if err = insert(s, s.drivers, aggregate.ID(), aggregate.Snapshot()); err != nil {
		return err
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r driverRepo) Update(_ context.Context, aggregate *driver.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if !replace(s.drivers, aggregate.ID(), aggregate.Snapshot()) {
		return errs.NewObjectNotFoundError("delivery partner", aggregate.ID().String())
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r driverRepo) Get(_ context.Context, id kernel.UUID) (*driver.DeliveryPartner, error) {
	row, ok := r.uow.read().drivers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery partner", id.String())
	}
	return driver.Restore(row.snap)
}

func (r driverRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.DeliveryPartner, error) {
	return r.Get(ctx, id)
}

func (r driverRepo) GetByUsername(_ context.Context, username string) (*driver.DeliveryPartner, error) {
	found := selectRows(r.uow.read().drivers,
		func(s driver.Snapshot) bool { return username != "" && s.Username == username },
		byName(func(s driver.Snapshot) string { return s.Name }))
	if len(found) == 0 {
		return nil, errs.NewObjectNotFoundError("delivery partner", username)
	}
	return driver.Restore(found[0])
}

func (r driverRepo) List(_ context.Context, availableOnly bool) ([]*driver.DeliveryPartner, error) {
	return restoreAll(selectRows(r.uow.read().drivers,
		func(s driver.Snapshot) bool { return !availableOnly || s.IsAvailable },
		byName(func(s driver.Snapshot) string { return s.Name })), driver.Restore)
}

type recipientRepo struct{ uow *UnitOfWork }

func (r recipientRepo) Add(_ context.Context, aggregate *recipient.Recipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if err = insert(s, s.recipients, aggregate.ID(), aggregate.Snapshot()); err != nil {
		return err
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r recipientRepo) Update(_ context.Context, aggregate *recipient.Recipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	s, err := r.uow.write()
	if err != nil {
		return err
	}
	if !replace(s.recipients, aggregate.ID(), aggregate.Snapshot()) {
		return errs.NewObjectNotFoundError("recipient", aggregate.ID().String())
	}
	r.uow.TrackAggregate(aggregate)
	return nil
}

func (r recipientRepo) Get(_ context.Context, id kernel.UUID) (*recipient.Recipient, error) {
	row, ok := r.uow.read().recipients[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("recipient", id.String())
	}
	return recipient.Restore(row.snap)
}

func (r recipientRepo) List(_ context.Context, activeOnly bool) ([]*recipient.Recipient, error) {
	return restoreAll(selectRows(r.uow.read().recipients,
		func(s recipient.Snapshot) bool { return !activeOnly || s.IsActive },
		byName(func(s recipient.Snapshot) string { return s.Name })), recipient.Restore)
}

// Package postgres provides the GORM implementation of the Unit of Work
// pattern for the donation logistics core. One GormUnitOfWork wraps one
// database transaction; every repository it hands out runs on that
// transaction while it is open and on the plain connection otherwise.
//
// Usage:
//
//	uow := NewGormUnitOfWorkFactory(db, observer).Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.DonationRepository().Add(ctx, d); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Aggregates written through the repositories are tracked and handed to the
// CommitObserver once the transaction has committed. A rolled back unit of
// work forgets them.
package postgres

import (
	"context"

	"donations/internal/adapters/out/postgres/centerrepo"
	"donations/internal/adapters/out/postgres/contentrepo"
	"donations/internal/adapters/out/postgres/deliveryrepo"
	"donations/internal/adapters/out/postgres/donationrepo"
	"donations/internal/adapters/out/postgres/donorrepo"
	"donations/internal/adapters/out/postgres/driverrepo"
	"donations/internal/adapters/out/postgres/recipientrepo"
	"donations/internal/adapters/out/postgres/wasterepo"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate added or updated during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	observer ports.CommitObserver
}

// NewGormUnitOfWorkFactory creates a factory. observer may be nil.
func NewGormUnitOfWorkFactory(db *gorm.DB, observer ports.CommitObserver) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, observer: observer}
}

// Create returns a unit of work with no transaction open yet.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		observer:          f.observer,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	observer          ports.CommitObserver
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it again while a transaction is open
// does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and, on success, reports the tracked
// aggregates to the observer.
//
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.notify(ctx)
	return nil
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction when
// no transaction is open, which makes a deferred Rollback after a successful
// Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) notify(ctx context.Context) {
	if len(uow.trackedAggregates) == 0 {
		return
	}
	aggregates := make([]any, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		aggregates = append(aggregates, tracked.Aggregate)
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]

	if uow.observer != nil {
		uow.observer.Committed(ctx, aggregates)
	}
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// DonorRepository returns a donor repository on the current connection.
// Repositories obtained before Begin do not join the transaction.
func (uow *GormUnitOfWork) DonorRepository() ports.DonorRepository {
	return donorrepo.NewGormDonorRepository(uow.conn(), uow)
}

// CollectionCenterRepository returns a center repository on the current connection.
func (uow *GormUnitOfWork) CollectionCenterRepository() ports.CollectionCenterRepository {
	return centerrepo.NewGormCenterRepository(uow.conn(), uow)
}

// DonationRepository returns a donation repository on the current connection.
func (uow *GormUnitOfWork) DonationRepository() ports.DonationRepository {
	return donationrepo.NewGormDonationRepository(uow.conn(), uow)
}

// DeliveryPartnerRepository returns a driver repository on the current connection.
func (uow *GormUnitOfWork) DeliveryPartnerRepository() ports.DeliveryPartnerRepository {
	return driverrepo.NewGormDeliveryPartnerRepository(uow.conn(), uow)
}

// RecipientRepository returns a recipient repository on the current connection.
func (uow *GormUnitOfWork) RecipientRepository() ports.RecipientRepository {
	return recipientrepo.NewGormRecipientRepository(uow.conn(), uow)
}

// DeliveryRepository returns a delivery repository on the current connection.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn(), uow)
}

// WasteRepository returns a waste repository on the current connection.
func (uow *GormUnitOfWork) WasteRepository() ports.WasteRepository {
	return wasterepo.NewGormWasteRepository(uow.conn(), uow)
}

// ContentRepository returns a content repository on the current connection.
func (uow *GormUnitOfWork) ContentRepository() ports.ContentRepository {
	return contentrepo.NewGormContentRepository(uow.conn(), uow)
}

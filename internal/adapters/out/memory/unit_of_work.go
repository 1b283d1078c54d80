package memory

import (
	"context"

	"donations/internal/core/ports"
)

// UnitOfWorkFactory hands out units of work over one Store.
type UnitOfWorkFactory struct {
	store    *Store
	observer ports.CommitObserver
}

// NewUnitOfWorkFactory binds units of work to store. observer may be nil.
func NewUnitOfWorkFactory(store *Store, observer ports.CommitObserver) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, observer: observer}
}

// Create returns a unit of work with no transaction open yet.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store, observer: f.observer}
}

// UnitOfWork stages changes on a private copy of the committed state and
// publishes the copy on Commit. Only one unit of work per store is open at a
// time, which is what makes GetForUpdate a plain Get here.
type UnitOfWork struct {
	store    *Store
	observer ports.CommitObserver

	staged  *state
	tracked []any
}

// Begin blocks until no other unit of work on the store is open.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.staged != nil {
		return nil
	}
	if err := u.store.lock(ctx); err != nil {
		return err
	}
	u.staged = u.store.current().clone()
	u.tracked = nil
	return nil
}

// Commit publishes the staged state and notifies the observer.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.staged == nil {
		return ErrNoTransaction
	}
	u.store.publish(u.staged)
	u.staged = nil
	u.store.unlock()

	if u.observer != nil && len(u.tracked) > 0 {
		u.observer.Committed(ctx, u.tracked)
	}
	u.tracked = nil
	return nil
}

// Rollback drops the staged state. It returns ErrNoTransaction when nothing
// is open, so a deferred Rollback after Commit is harmless.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.staged == nil {
		return ErrNoTransaction
	}
	u.staged = nil
	u.tracked = nil
	u.store.unlock()
	return nil
}

// TrackAggregate remembers aggregate for the commit observer.
func (u *UnitOfWork) TrackAggregate(aggregate any) {
	u.tracked = append(u.tracked, aggregate)
}

// read returns the state repositories see: the staged copy inside a
// transaction, the committed one outside.
func (u *UnitOfWork) read() *state {
	if u.staged != nil {
		return u.staged
	}
	return u.store.current()
}

func (u *UnitOfWork) write() (*state, error) {
	if u.staged == nil {
		return nil, ErrNoTransaction
	}
	return u.staged, nil
}

func (u *UnitOfWork) DonorRepository() ports.DonorRepository { return donorRepo{u} }
func (u *UnitOfWork) CollectionCenterRepository() ports.CollectionCenterRepository {
	return centerRepo{u}
}
func (u *UnitOfWork) DonationRepository() ports.DonationRepository { return donationRepo{u} }
func (u *UnitOfWork) DeliveryPartnerRepository() ports.DeliveryPartnerRepository {
	return driverRepo{u}
}
func (u *UnitOfWork) RecipientRepository() ports.RecipientRepository { return recipientRepo{u} }
func (u *UnitOfWork) DeliveryRepository() ports.DeliveryRepository   { return deliveryRepo{u} }
func (u *UnitOfWork) WasteRepository() ports.WasteRepository         { return wasteRepo{u} }
func (u *UnitOfWork) ContentRepository() ports.ContentRepository     { return contentRepo{u} }

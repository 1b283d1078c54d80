package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction. Repositories it hands out are bound
// to the transaction opened by Begin; outside Begin/Commit they read committed
// state.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	DonorRepository() DonorRepository
	CollectionCenterRepository() CollectionCenterRepository
	DonationRepository() DonationRepository
	DeliveryPartnerRepository() DeliveryPartnerRepository
	RecipientRepository() RecipientRepository
	DeliveryRepository() DeliveryRepository
	WasteRepository() WasteRepository
	ContentRepository() ContentRepository
}

// CommitObserver is told about every aggregate written by a unit of work once
// its transaction has committed.
type CommitObserver interface {
	Committed(ctx context.Context, aggregates []any)
}

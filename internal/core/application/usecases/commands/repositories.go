// Package commands contains the state-changing use cases of the donation
// logistics core. Every handler follows the same shape: validate the command,
// open a unit of work, load (and lock) the aggregates involved, let a domain
// service apply the transition, persist, commit. A handler returns before
// Commit on any error, so the deferred Rollback discards partial writes.
package commands

import (
	"context"

	"donations/internal/core/ports"
)

type (
	// TxManager scopes a transaction. Rollback after Commit is a no-op.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DonorRepoFactory and the interfaces below expose one repository each,
	// bound to the current transaction.
	DonorRepoFactory interface {
		DonorRepository() ports.DonorRepository
	}

	CenterRepoFactory interface {
		CollectionCenterRepository() ports.CollectionCenterRepository
	}

	DonationRepoFactory interface {
		DonationRepository() ports.DonationRepository
	}

	DriverRepoFactory interface {
		DeliveryPartnerRepository() ports.DeliveryPartnerRepository
	}

	RecipientRepoFactory interface {
		RecipientRepository() ports.RecipientRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	WasteRepoFactory interface {
		WasteRepository() ports.WasteRepository
	}

	ContentRepoFactory interface {
		ContentRepository() ports.ContentRepository
	}

	// UoW spans every aggregate; lifecycle transitions touch several of them
	// (donation, delivery, center, driver) in one transaction.
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil { ... }
	//	defer func() { _ = uow.Rollback(ctx) }()
	//	... load, mutate, Update ...
	//	return uow.Commit(ctx)
	UoW interface {
		TxManager
		DonorRepoFactory
		CenterRepoFactory
		DonationRepoFactory
		DriverRepoFactory
		RecipientRepoFactory
		DeliveryRepoFactory
		WasteRepoFactory
		ContentRepoFactory
	}

	// UoWFactory opens a fresh unit of work per handler call.
	UoWFactory interface {
		Create() UoW
	}
)

// Package ports defines the contracts between the donation logistics core and
// its adapters: repositories per aggregate, the unit of work that binds them to
// one transaction, the content generator and the commit observer.
//
// Get-style lookups return errs.ObjectNotFoundError when nothing matches.
// Find/List lookups return an empty slice instead.
package ports

import (
	"context"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/recipient"
)

// DonorRepository persists donors. Delete removes only the donor row; the
// cascade to its donations is done by the use case.
type DonorRepository interface {
	Add(ctx context.Context, aggregate *donor.Donor) error
	Get(ctx context.Context, id kernel.UUID) (*donor.Donor, error)
	GetByUsername(ctx context.Context, username string) (*donor.Donor, error)
	List(ctx context.Context) ([]*donor.Donor, error)
	Delete(ctx context.Context, id kernel.UUID) error
}

// CollectionCenterRepository persists collection centers.
type CollectionCenterRepository interface {
	Add(ctx context.Context, aggregate *center.CollectionCenter) error
	Update(ctx context.Context, aggregate *center.CollectionCenter) error
	Get(ctx context.Context, id kernel.UUID) (*center.CollectionCenter, error)

	// GetForUpdate loads the center and holds it locked until the surrounding
	// unit of work ends, so that capacity checks on one center are serialised.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*center.CollectionCenter, error)

	// GetByStaffUsername returns the center run by the given staff account.
	GetByStaffUsername(ctx context.Context, username string) (*center.CollectionCenter, error)
	List(ctx context.Context) ([]*center.CollectionCenter, error)
}

// DeliveryPartnerRepository persists drivers. List with availableOnly returns
// only drivers that may take a new delivery.
type DeliveryPartnerRepository interface {
	Add(ctx context.Context, aggregate *driver.DeliveryPartner) error
	Update(ctx context.Context, aggregate *driver.DeliveryPartner) error
	Get(ctx context.Context, id kernel.UUID) (*driver.DeliveryPartner, error)
	// GetForUpdate reads the driver and locks it for the rest of the unit of work.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.DeliveryPartner, error)
	GetByUsername(ctx context.Context, username string) (*driver.DeliveryPartner, error)
	List(ctx context.Context, availableOnly bool) ([]*driver.DeliveryPartner, error)
}

// RecipientRepository persists recipients. There is no Delete: recipients are
// deactivated instead.
type RecipientRepository interface {
	Add(ctx context.Context, aggregate *recipient.Recipient) error
	Update(ctx context.Context, aggregate *recipient.Recipient) error
	Get(ctx context.Context, id kernel.UUID) (*recipient.Recipient, error)
	List(ctx context.Context, activeOnly bool) ([]*recipient.Recipient, error)
}

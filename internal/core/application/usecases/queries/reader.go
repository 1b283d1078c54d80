// Package queries contains the read side: each handler loads aggregates
// through repositories opened outside any transaction and returns flat read
// models. Access rules mirror the commands: staff and admins see everything,
// drivers see their own deliveries, donors see their own donations.
package queries

import (
	"context"
	"errors"

	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/ports"
	"donations/internal/pkg/errs"
)

type (
	// Reader is the read-only slice of a unit of work. ports.UnitOfWork
	// satisfies it; queries never call Begin.
	Reader interface {
		DonorRepository() ports.DonorRepository
		CollectionCenterRepository() ports.CollectionCenterRepository
		DonationRepository() ports.DonationRepository
		DeliveryPartnerRepository() ports.DeliveryPartnerRepository
		RecipientRepository() ports.RecipientRepository
		DeliveryRepository() ports.DeliveryRepository
		WasteRepository() ports.WasteRepository
		ContentRepository() ports.ContentRepository
	}

	// ReaderFactory hands out a fresh Reader per query.
	ReaderFactory interface {
		Reader() Reader
	}
)

// UnitOfWorkReaders adapts a unit of work factory to ReaderFactory.
type UnitOfWorkReaders struct {
	Factory ports.UnitOfWorkFactory
}

// Reader opens a unit of work without beginning a transaction.
func (r UnitOfWorkReaders) Reader() Reader {
	return r.Factory.Create()
}

func isStaff(p kernel.Principal) bool {
	return p.IsAdmin() || p.HasRole(kernel.RoleStaff)
}

func requireStaff(p kernel.Principal) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !isStaff(p) {
		return errs.NewForbiddenError(p.Username(), "is not staff")
	}
	return nil
}

// ownDonor resolves the donor record of a DONOR principal.
func ownDonor(ctx context.Context, r Reader, p kernel.Principal) (*donor.Donor, error) {
	if !p.HasRole(kernel.RoleDonor) {
		return nil, errs.NewForbiddenError(p.Username(), "is not a donor")
	}
	d, err := r.DonorRepository().GetByUsername(ctx, p.Username())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewForbiddenError(p.Username(), "has no donor record")
	}
	return d, err
}

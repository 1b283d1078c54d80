package queries

import (
	"context"
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/waste"
	"donations/internal/core/ports"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var ErrRegistryQueryIsNotConstructed = errors.New("RegistryQuery must be created via NewRegistryQuery constructor")

// RegistryQuery carries the caller and the optional "only usable ones" flag
// shared by the registry listings (available drivers, active recipients).
type RegistryQuery struct {
	principal  kernel.Principal
	onlyUsable bool

	guard guard.ConstructorGuard
}

// NewRegistryQuery builds a query shared by the registry listings. With
// onlyUsable set, drivers are narrowed to available ones and recipients to
// active ones.
func NewRegistryQuery(principal kernel.Principal, onlyUsable bool) (RegistryQuery, error) {
	if err := principal.Validate(); err != nil {
		return RegistryQuery{}, err
	}
	return RegistryQuery{principal: principal, onlyUsable: onlyUsable, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the query was built by NewRegistryQuery.
func (q RegistryQuery) Validate() error {
	return q.guard.Validate(ErrRegistryQueryIsNotConstructed)
}

// RegistryQueryHandler serves the registry listings.
type RegistryQueryHandler struct {
	readers ReaderFactory
}

// NewRegistryQueryHandler returns a handler reading through readers.
func NewRegistryQueryHandler(readers ReaderFactory) RegistryQueryHandler {
	return RegistryQueryHandler{readers: readers}
}

// ListCenters is open to every authenticated caller; donors pick a center
// when they donate.
func (h RegistryQueryHandler) ListCenters(ctx context.Context, q RegistryQuery) ([]CenterView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	found, err := h.readers.Reader().CollectionCenterRepository().List(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(found, newCenterView), nil
}

// GetMyCenter returns the center run by the calling staff member.
func (h RegistryQueryHandler) GetMyCenter(ctx context.Context, q RegistryQuery) (CenterView, error) {
	if err := q.Validate(); err != nil {
		return CenterView{}, err
	}
	if !q.principal.HasRole(kernel.RoleStaff) {
		return CenterView{}, errs.NewForbiddenError(q.principal.Username(), "is not staff")
	}
	c, err := h.readers.Reader().CollectionCenterRepository().GetByStaffUsername(ctx, q.principal.Username())
	if err != nil {
		return CenterView{}, err
	}
	return newCenterView(c), nil
}

// ListDonors is staff only.
func (h RegistryQueryHandler) ListDonors(ctx context.Context, q RegistryQuery) ([]DonorView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := requireStaff(q.principal); err != nil {
		return nil, err
	}
	found, err := h.readers.Reader().DonorRepository().List(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(found, newDonorView), nil
}

// ListDeliveryPartners is staff only.
func (h RegistryQueryHandler) ListDeliveryPartners(ctx context.Context, q RegistryQuery) ([]DeliveryPartnerView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := requireStaff(q.principal); err != nil {
		return nil, err
	}
	found, err := h.readers.Reader().DeliveryPartnerRepository().List(ctx, q.onlyUsable)
	if err != nil {
		return nil, err
	}
	return mapAll(found, newDeliveryPartnerView), nil
}

// ListRecipients is staff only.
func (h RegistryQueryHandler) ListRecipients(ctx context.Context, q RegistryQuery) ([]RecipientView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := requireStaff(q.principal); err != nil {
		return nil, err
	}
	found, err := h.readers.Reader().RecipientRepository().List(ctx, q.onlyUsable)
	if err != nil {
		return nil, err
	}
	return mapAll(found, newRecipientView), nil
}

// ListWaste returns write-offs, optionally narrowed to a center, a donation
// and a status. With onlyUsable set, only PENDING records are returned.
func (h RegistryQueryHandler) ListWaste(
	ctx context.Context,
	q RegistryQuery,
	centerID, donationID *kernel.UUID,
) ([]WasteView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := requireStaff(q.principal); err != nil {
		return nil, err
	}
	filter := ports.WasteFilter{CenterID: centerID, DonationID: donationID}
	if q.onlyUsable {
		pending := waste.Pending
		filter.Status = &pending
	}
	found, err := h.readers.Reader().WasteRepository().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapAll(found, newWasteView), nil
}

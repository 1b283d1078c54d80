package queries

import (
	"context"
	"errors"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/ports"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var (
	ErrListDonationsQueryIsNotConstructed = errors.New(
		"ListDonationsQuery must be created via NewListDonationsQuery constructor",
	)
	ErrGetDonationQueryIsNotConstructed = errors.New(
		"GetDonationQuery must be created via NewGetDonationQuery constructor",
	)
)

// ListDonationsQuery filters donations by status, donor and center. A DONOR
// principal only ever sees the donations of its own donor record, whatever
// donor filter it passes.
type ListDonationsQuery struct {
	principal kernel.Principal
	filter    ports.DonationFilter

	guard guard.ConstructorGuard
}

// NewListDonationsQuery builds a donation listing. Staff see every donation,
// donors only their own.
func NewListDonationsQuery(
	principal kernel.Principal,
	status *donation.Status,
	donorID, centerID *kernel.UUID,
) (ListDonationsQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListDonationsQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListDonationsQuery{}, err
		}
	}
	return ListDonationsQuery{
		principal: principal,
		filter:    ports.DonationFilter{Status: status, DonorID: donorID, CenterID: centerID},
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the query was built by NewListDonationsQuery.
func (q ListDonationsQuery) Validate() error {
	return q.guard.Validate(ErrListDonationsQueryIsNotConstructed)
}

// ListDonationsQueryHandler lists donations visible to the caller.
type ListDonationsQueryHandler struct {
	readers ReaderFactory
}

// NewListDonationsQueryHandler returns a handler reading through readers.
func NewListDonationsQueryHandler(readers ReaderFactory) ListDonationsQueryHandler {
	return ListDonationsQueryHandler{readers: readers}
}

// Handle applies the query filters and the caller's visibility.
func (h ListDonationsQueryHandler) Handle(ctx context.Context, q ListDonationsQuery) ([]DonationView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	r := h.readers.Reader()
	filter := q.filter
	if !isStaff(q.principal) {
		own, err := ownDonor(ctx, r, q.principal)
		if err != nil {
			return nil, err
		}
		id := own.ID()
		filter.DonorID = &id
	}

	found, err := r.DonationRepository().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapAll(found, newDonationView), nil
}

// GetDonationQuery reads one donation.
type GetDonationQuery struct {
	principal  kernel.Principal
	donationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDonationQuery validates the principal and the donation id.
func NewGetDonationQuery(principal kernel.Principal, donationID kernel.UUID) (GetDonationQuery, error) {
	if err := errors.Join(principal.Validate(), donationID.Validate()); err != nil {
		return GetDonationQuery{}, err
	}
	return GetDonationQuery{principal: principal, donationID: donationID, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the query was built by NewGetDonationQuery.
func (q GetDonationQuery) Validate() error {
	return q.guard.Validate(ErrGetDonationQueryIsNotConstructed)
}

// GetDonationQueryHandler reads a single donation.
type GetDonationQueryHandler struct {
	readers ReaderFactory
}

// NewGetDonationQueryHandler returns a handler reading through readers.
func NewGetDonationQueryHandler(readers ReaderFactory) GetDonationQueryHandler {
	return GetDonationQueryHandler{readers: readers}
}

// Handle returns the donation when the caller is staff or owns it. Other
// donors get a forbidden error, not a not-found one.
func (h GetDonationQueryHandler) Handle(ctx context.Context, q GetDonationQuery) (DonationView, error) {
	if err := q.Validate(); err != nil {
		return DonationView{}, err
	}

	r := h.readers.Reader()
	d, err := r.DonationRepository().Get(ctx, q.donationID)
	if err != nil {
		return DonationView{}, err
	}
	if !isStaff(q.principal) {
		own, err := ownDonor(ctx, r, q.principal)
		if err != nil {
			return DonationView{}, err
		}
		if !own.ID().IsEqual(d.DonorID()) {
			return DonationView{}, errs.NewForbiddenError(q.principal.Username(), "does not own the donation")
		}
	}
	return newDonationView(d), nil
}

package queries

import (
	"context"
	"errors"

	"donations/internal/core/domain/model/delivery"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/ports"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var (
	ErrListDeliveriesQueryIsNotConstructed = errors.New(
		"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
	)
	ErrListMyDeliveriesQueryIsNotConstructed = errors.New(
		"ListMyDeliveriesQuery must be created via NewListMyDeliveriesQuery constructor",
	)
)

// ListDeliveriesQuery is the staff view over all deliveries.
type ListDeliveriesQuery struct {
	principal kernel.Principal
	filter    ports.DeliveryFilter

	guard guard.ConstructorGuard
}

// NewListDeliveriesQuery builds a staff listing. Nil filters match everything.
func NewListDeliveriesQuery(
	principal kernel.Principal,
	driverID, centerID *kernel.UUID,
	status *delivery.Status,
) (ListDeliveriesQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListDeliveriesQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListDeliveriesQuery{}, err
		}
	}
	return ListDeliveriesQuery{
		principal: principal,
		filter:    ports.DeliveryFilter{DriverID: driverID, CenterID: centerID, Status: status},
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the query was built by NewListDeliveriesQuery.
func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

// ListDeliveriesQueryHandler lists deliveries for staff.
type ListDeliveriesQueryHandler struct {
	readers ReaderFactory
}

// NewListDeliveriesQueryHandler returns a handler reading through readers.
func NewListDeliveriesQueryHandler(readers ReaderFactory) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{readers: readers}
}

// Handle returns the deliveries matching the query filter.
func (h ListDeliveriesQueryHandler) Handle(ctx context.Context, q ListDeliveriesQuery) ([]DeliveryView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := requireStaff(q.principal); err != nil {
		return nil, err
	}

	found, err := h.readers.Reader().DeliveryRepository().Find(ctx, q.filter)
	if err != nil {
		return nil, err
	}
	return mapAll(found, newDeliveryView), nil
}

// ListMyDeliveriesQuery returns the deliveries of the driver record whose
// username is the caller's.
type ListMyDeliveriesQuery struct {
	principal kernel.Principal
	status    *delivery.Status

	guard guard.ConstructorGuard
}

// NewListMyDeliveriesQuery builds the driver's own listing, optionally
// narrowed to one status.
func NewListMyDeliveriesQuery(principal kernel.Principal, status *delivery.Status) (ListMyDeliveriesQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListMyDeliveriesQuery{}, err
	}
	return ListMyDeliveriesQuery{principal: principal, status: status, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the query was built by NewListMyDeliveriesQuery.
func (q ListMyDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListMyDeliveriesQueryIsNotConstructed)
}

// ListMyDeliveriesQueryHandler lists the calling driver's deliveries.
type ListMyDeliveriesQueryHandler struct {
	readers ReaderFactory
}

// NewListMyDeliveriesQueryHandler returns a handler reading through readers.
func NewListMyDeliveriesQueryHandler(readers ReaderFactory) ListMyDeliveriesQueryHandler {
	return ListMyDeliveriesQueryHandler{readers: readers}
}

// Handle resolves the driver by username and lists its deliveries. Callers
// without the DRIVER role are refused.
func (h ListMyDeliveriesQueryHandler) Handle(ctx context.Context, q ListMyDeliveriesQuery) ([]DeliveryView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if !q.principal.HasRole(kernel.RoleDriver) {
		return nil, errs.NewForbiddenError(q.principal.Username(), "is not a driver")
	}

	r := h.readers.Reader()
	drv, err := r.DeliveryPartnerRepository().GetByUsername(ctx, q.principal.Username())
	if err != nil {
		return nil, err
	}
	driverID := drv.ID()
	found, err := r.DeliveryRepository().Find(ctx, ports.DeliveryFilter{DriverID: &driverID, Status: q.status})
	if err != nil {
		return nil, err
	}
	return mapAll(found, newDeliveryView), nil
}

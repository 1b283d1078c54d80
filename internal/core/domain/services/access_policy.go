package services

import (
	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
)

// AccessPolicy answers "may this principal do this" for the lifecycle
// operations. ADMIN passes every check.
type AccessPolicy struct{}

// NewAccessPolicy returns the stateless policy.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// AuthorizeCenter allows the staff member assigned to c.
func (AccessPolicy) AuthorizeCenter(p kernel.Principal, c *center.CollectionCenter) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.IsAdmin() {
		return nil
	}
	if p.HasRole(kernel.RoleStaff) && c != nil && c.HasStaff(p.Username()) {
		return nil
	}
	return errs.NewForbiddenError(p.Username(), "is not staff of the collection center")
}

// AuthorizeDelivery allows the driver holding the delivery and the staff of
// the center it leaves from.
func (a AccessPolicy) AuthorizeDelivery(p kernel.Principal, from *center.CollectionCenter, drv *driver.DeliveryPartner) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.HasRole(kernel.RoleDriver) && drv != nil && drv.IsOwnedBy(p.Username()) {
		return nil
	}
	if a.AuthorizeCenter(p, from) == nil {
		return nil
	}
	return errs.NewForbiddenError(p.Username(), "is neither the assigned driver nor staff of the collection center")
}

// AuthorizeDonor allows staff and the account that owns the donor record.
func (AccessPolicy) AuthorizeDonor(p kernel.Principal, d *donor.Donor) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.IsAdmin() || p.HasRole(kernel.RoleStaff) {
		return nil
	}
	if p.HasRole(kernel.RoleDonor) && d != nil && d.IsOwnedBy(p.Username()) {
		return nil
	}
	return errs.NewForbiddenError(p.Username(), "does not own the donor record")
}

// RequireAdmin guards deletes and other administrator-only operations.
func (AccessPolicy) RequireAdmin(p kernel.Principal) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.IsAdmin() {
		return errs.NewForbiddenError(p.Username(), "is not an administrator")
	}
	return nil
}

// RequireStaff allows ADMIN and STAFF regardless of center.
func (AccessPolicy) RequireStaff(p kernel.Principal) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.IsAdmin() && !p.HasRole(kernel.RoleStaff) {
		return errs.NewForbiddenError(p.Username(), "is not staff")
	}
	return nil
}

package kernel

import (
	"errors"
	"slices"
	"strings"

	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

// ErrPrincipalNotConstructed is returned when a zero Principal reaches an operation.
var ErrPrincipalNotConstructed = errors.New("principal must be created via NewPrincipal")

// Role grants a class of operations. ADMIN passes every access check.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleStaff  Role = "STAFF"
	RoleDriver Role = "DRIVER"
	RoleDonor  Role = "DONOR"
)

// ParseRole accepts "ADMIN" as well as the "ROLE_ADMIN" form found in tokens.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "ROLE_"))
	switch r {
	case RoleAdmin, RoleStaff, RoleDriver, RoleDonor:
		return r, true
	default:
		return "", false
	}
}

// Principal is the authenticated caller of a lifecycle operation.
type Principal struct {
	username string
	roles    []Role
	guard    guard.ConstructorGuard
}

// NewPrincipal builds a caller identity. Both a username and at least one role
// are required; the HTTP adapter derives them from the bearer token.
//
// Example:
//
//	p, err := NewPrincipal("maria", RoleStaff)
//	if err != nil {
//	    return err
//	}
//	p.HasRole(RoleStaff) // true
//	p.IsAdmin()          // false
func NewPrincipal(username string, roles ...Role) (Principal, error) {
	if strings.TrimSpace(username) == "" {
		return Principal{}, errs.NewValueIsRequiredError("username")
	}
	if len(roles) == 0 {
		return Principal{}, errs.NewValueIsRequiredError("roles")
	}
	return Principal{
		username: username,
		roles:    slices.Clone(roles),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrPrincipalNotConstructed for the zero Principal.
func (p Principal) Validate() error {
	return p.guard.Validate(ErrPrincipalNotConstructed)
}

// Username returns the account name.
func (p Principal) Username() string {
	return p.username
}

// Roles returns a copy of the granted roles.
func (p Principal) Roles() []Role {
	return slices.Clone(p.roles)
}

// HasRole reports whether role was granted.
func (p Principal) HasRole(role Role) bool {
	return slices.Contains(p.roles, role)
}

// IsAdmin is HasRole(RoleAdmin).
func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

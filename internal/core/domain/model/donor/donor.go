// Package donor implements the Donor aggregate.
package donor

import (
	"errors"
	"strings"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var (
	ErrDonorIsNotConstructed = errors.New("Donor must be created via NewDonor constructor")
	ErrNameIsRequired        = errs.NewValueIsRequiredError("name")
)

// Type classifies where donations come from.
type Type string

const (
	TypeRestaurant Type = "RESTAURANT"
	TypeGrocery    Type = "GROCERY"
	TypeHousehold  Type = "HOUSEHOLD"
	TypeOther      Type = "OTHER"
)

// ParseType maps unknown values to TypeOther.
func ParseType(s string) Type {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeRestaurant, TypeGrocery, TypeHousehold:
		return t
	default:
		return TypeOther
	}
}

// Donor is a person or business that pledges donations. Deleting a donor
// deletes its donations too.
type Donor struct {
	id       kernel.UUID
	name     string
	contact  string
	location string
	kind     Type
	username string
	guard    guard.ConstructorGuard
}

// Snapshot is the persisted form of a Donor.
type Snapshot struct {
	ID       kernel.UUID
	Name     string
	Contact  string
	Location string
	Type     Type
	Username string
}

// NewDonor creates a donor. username links the donor to an account and may be empty.
func NewDonor(id kernel.UUID, name, contact, location string, kind Type, username string) (*Donor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameIsRequired
	}
	return &Donor{
		id:       id,
		name:     name,
		contact:  strings.TrimSpace(contact),
		location: strings.TrimSpace(location),
		kind:     ParseType(string(kind)),
		username: strings.TrimSpace(username),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Restore rebuilds a donor from persistence.
func Restore(s Snapshot) (*Donor, error) {
	return NewDonor(s.ID, s.Name, s.Contact, s.Location, s.Type, s.Username)
}

// Validate reports ErrDonorIsNotConstructed for a nil or zero-value donor.
func (d *Donor) Validate() error {
	if d == nil {
		return ErrDonorIsNotConstructed
	}
	return d.guard.Validate(ErrDonorIsNotConstructed)
}

// ID returns the donor identifier.
func (d *Donor) ID() kernel.UUID { return d.id }

// Name returns the display name.
func (d *Donor) Name() string { return d.name }

// Contact returns the phone or e-mail given at registration.
func (d *Donor) Contact() string { return d.contact }

// Location returns the donor address.
func (d *Donor) Location() string { return d.location }

// Type returns the donor category.
func (d *Donor) Type() Type { return d.kind }

// Username returns the owning account, or "".
func (d *Donor) Username() string { return d.username }

// IsOwnedBy reports whether the donor record belongs to the given account.
func (d *Donor) IsOwnedBy(username string) bool {
	return d.username != "" && d.username == username
}

// Snapshot copies the donor for persistence.
func (d *Donor) Snapshot() Snapshot {
	return Snapshot{
		ID:       d.id,
		Name:     d.name,
		Contact:  d.contact,
		Location: d.location,
		Type:     d.kind,
		Username: d.username,
	}
}

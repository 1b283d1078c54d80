// Package recipient implements the Recipient aggregate: an organisation that
// receives deliveries. Recipients are never deleted, only deactivated.
package recipient

import (
	"errors"
	"strings"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var (
	ErrRecipientIsNotConstructed = errors.New("Recipient must be created via NewRecipient constructor")
	ErrNameIsRequired            = errs.NewValueIsRequiredError("name")
	ErrAddressIsRequired         = errs.NewValueIsRequiredError("address")
)

// Type classifies recipient organisations.
type Type string

const (
	TypeShelter         Type = "SHELTER"
	TypeFoodBank        Type = "FOOD_BANK"
	TypeCommunityCenter Type = "COMMUNITY_CENTER"
	TypeOrphanage       Type = "ORPHANAGE"
	TypeOldAgeHome      Type = "OLD_AGE_HOME"
	TypeOther           Type = "OTHER"
)

// ParseType maps unknown or empty input to TypeOther.
func ParseType(s string) Type {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeShelter, TypeFoodBank, TypeCommunityCenter, TypeOrphanage, TypeOldAgeHome:
		return t
	default:
		return TypeOther
	}
}

// Contact groups the ways to reach a recipient.
type Contact struct {
	Person string
	Phone  string
	Email  string
}

// Recipient is a destination for deliveries.
type Recipient struct {
	id       kernel.UUID
	name     string
	kind     Type
	address  string
	contact  Contact
	isActive bool
	guard    guard.ConstructorGuard
}

// Snapshot is the persisted form of a Recipient.
type Snapshot struct {
	ID       kernel.UUID
	Name     string
	Type     Type
	Address  string
	Contact  Contact
	IsActive bool
}

// NewRecipient creates an active recipient.
func NewRecipient(id kernel.UUID, name string, kind Type, address string, contact Contact) (*Recipient, error) {
	r := &Recipient{
		kind:     ParseType(string(kind)),
		contact:  contact,
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	r.id = id
	r.name = strings.TrimSpace(name)
	r.address = strings.TrimSpace(address)

	var errList []error
	if r.name == "" {
		errList = append(errList, ErrNameIsRequired)
	}
	if r.address == "" {
		errList = append(errList, ErrAddressIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return r, nil
}

// Restore rebuilds a recipient from persistence, keeping its active flag.
func Restore(s Snapshot) (*Recipient, error) {
	r, err := NewRecipient(s.ID, s.Name, s.Type, s.Address, s.Contact)
	if err != nil {
		return nil, err
	}
	r.isActive = s.IsActive
	return r, nil
}

// Validate reports ErrRecipientIsNotConstructed for a nil or zero-value recipient.
func (r *Recipient) Validate() error {
	if r == nil {
		return ErrRecipientIsNotConstructed
	}
	return r.guard.Validate(ErrRecipientIsNotConstructed)
}

// ID returns the recipient identifier.
func (r *Recipient) ID() kernel.UUID { return r.id }

// Name returns the organisation name.
func (r *Recipient) Name() string { return r.name }

// Type returns the organisation kind.
func (r *Recipient) Type() Type { return r.kind }

// Address returns the drop-off address.
func (r *Recipient) Address() string { return r.address }

// Contact returns the contact details.
func (r *Recipient) Contact() Contact { return r.contact }

// IsActive reports whether new deliveries may target the recipient.
func (r *Recipient) IsActive() bool { return r.isActive }

// Snapshot copies the recipient for persistence.
func (r *Recipient) Snapshot() Snapshot {
	return Snapshot{
		ID:       r.id,
		Name:     r.name,
		Type:     r.kind,
		Address:  r.address,
		Contact:  r.contact,
		IsActive: r.isActive,
	}
}

// Deactivate soft-deletes the recipient; inactive recipients get no new deliveries.
func (r *Recipient) Deactivate() {
	r.isActive = false
}

// Activate makes the recipient eligible for deliveries again.
func (r *Recipient) Activate() {
	r.isActive = true
}

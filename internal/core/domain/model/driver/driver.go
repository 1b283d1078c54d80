// Package driver implements the DeliveryPartner aggregate. A partner is
// reserved while it holds an active delivery and released when that delivery
// completes, is cancelled or is removed.
package driver

import (
	"errors"
	"strings"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var (
	// ErrDeliveryPartnerIsNotConstructed is returned by Validate for a nil or
	// zero-value partner.
	ErrDeliveryPartnerIsNotConstructed = errors.New("DeliveryPartner must be created via NewDeliveryPartner constructor")
	ErrNameIsRequired                  = errs.NewValueIsRequiredError("name")
)

// DeliveryPartner is a driver. isAvailable is false exactly while the partner
// holds an active delivery; Reserve and Release are the only ways to flip it.
type DeliveryPartner struct {
	id            kernel.UUID
	name          string
	phone         string
	vehicleNumber string
	vehicleType   string
	isAvailable   bool
	centerID      *kernel.UUID
	username      string
	guard         guard.ConstructorGuard
}

// Snapshot is the persisted form of a DeliveryPartner.
type Snapshot struct {
	ID            kernel.UUID
	Name          string
	Phone         string
	VehicleNumber string
	VehicleType   string
	IsAvailable   bool
	CenterID      *kernel.UUID
	Username      string
}

// NewDeliveryPartner creates an available partner. centerID is optional and
// only records a home center; it does not restrict which deliveries the
// partner may take.
func NewDeliveryPartner(
	id kernel.UUID,
	name, phone, vehicleNumber, vehicleType, username string,
	centerID *kernel.UUID,
) (*DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameIsRequired
	}
	p := &DeliveryPartner{
		id:            id,
		name:          name,
		phone:         strings.TrimSpace(phone),
		vehicleNumber: strings.TrimSpace(vehicleNumber),
		vehicleType:   strings.TrimSpace(vehicleType),
		username:      strings.TrimSpace(username),
		isAvailable:   true,
		guard:         guard.NewConstructorGuard(),
	}
	if centerID != nil {
		if err := centerID.Validate(); err != nil {
			return nil, err
		}
		c := *centerID
		p.centerID = &c
	}
	return p, nil
}

// Restore rebuilds a partner from persistence, keeping its availability.
func Restore(s Snapshot) (*DeliveryPartner, error) {
	p, err := NewDeliveryPartner(s.ID, s.Name, s.Phone, s.VehicleNumber, s.VehicleType, s.Username, s.CenterID)
	if err != nil {
		return nil, err
	}
	p.isAvailable = s.IsAvailable
	return p, nil
}

// Validate reports ErrDeliveryPartnerIsNotConstructed for a nil or zero-value partner.
func (p *DeliveryPartner) Validate() error {
	if p == nil {
		return ErrDeliveryPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrDeliveryPartnerIsNotConstructed)
}

// IsEqual compares partners by ID.
func (p *DeliveryPartner) IsEqual(other *DeliveryPartner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the partner identifier.
func (p *DeliveryPartner) ID() kernel.UUID { return p.id }

// Name returns the driver's name.
func (p *DeliveryPartner) Name() string { return p.name }

// Phone returns the contact number.
func (p *DeliveryPartner) Phone() string { return p.phone }

// VehicleNumber returns the registration plate.
func (p *DeliveryPartner) VehicleNumber() string { return p.vehicleNumber }

// VehicleType returns the vehicle kind, for example VAN.
func (p *DeliveryPartner) VehicleType() string { return p.vehicleType }

// IsAvailable reports whether the partner can take a new delivery.
func (p *DeliveryPartner) IsAvailable() bool { return p.isAvailable }

// Username returns the driver account used to act on deliveries.
func (p *DeliveryPartner) Username() string { return p.username }

// CenterID returns a copy of the home center, or nil.
func (p *DeliveryPartner) CenterID() *kernel.UUID {
	if p.centerID == nil {
		return nil
	}
	c := *p.centerID
	return &c
}

// IsOwnedBy reports whether username is this driver's account.
func (p *DeliveryPartner) IsOwnedBy(username string) bool {
	return p.username != "" && p.username == username
}

// Snapshot copies the partner for persistence.
func (p *DeliveryPartner) Snapshot() Snapshot {
	return Snapshot{
		ID:            p.id,
		Name:          p.name,
		Phone:         p.phone,
		VehicleNumber: p.vehicleNumber,
		VehicleType:   p.vehicleType,
		IsAvailable:   p.isAvailable,
		CenterID:      p.CenterID(),
		Username:      p.username,
	}
}

// Reserve marks the partner busy. A busy partner cannot take a second delivery.
func (p *DeliveryPartner) Reserve() error {
	if !p.isAvailable {
		return errs.NewInvalidStateErrorWithReason("delivery partner", "is not available")
	}
	p.isAvailable = false
	return nil
}

// Release marks the partner available again. Releasing an available partner is a no-op.
func (p *DeliveryPartner) Release() {
	p.isAvailable = true
}

package commands

import (
	"errors"
	"strings"

	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrCreateDeliveryPartnerCommandIsNotConstructed = errors.New(
	"CreateDeliveryPartnerCommand must be created via NewCreateDeliveryPartnerCommand constructor",
)

// CreateDeliveryPartnerCommand registers a driver, optionally attached to a
// home center.
type CreateDeliveryPartnerCommand struct {
	principal     kernel.Principal
	driverID      kernel.UUID
	name          string
	phone         string
	vehicleNumber string
	vehicleType   string
	username      string
	centerID      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateDeliveryPartnerCommand validates the driver fields.
func NewCreateDeliveryPartnerCommand(
	principal kernel.Principal,
	driverID kernel.UUID,
	name, phone, vehicleNumber, vehicleType, username string,
	centerID *kernel.UUID,
) (CreateDeliveryPartnerCommand, error) {
	if err := errors.Join(
		principal.Validate(),
		requireID("driverID", driverID),
		optionalID("centerID", centerID),
	); err != nil {
		return CreateDeliveryPartnerCommand{}, err
	}
	if strings.TrimSpace(name) == "" {
		return CreateDeliveryPartnerCommand{}, driver.ErrNameIsRequired
	}

	return CreateDeliveryPartnerCommand{
		principal:     principal,
		driverID:      driverID,
		name:          name,
		phone:         phone,
		vehicleNumber: vehicleNumber,
		vehicleType:   vehicleType,
		username:      username,
		centerID:      copyID(centerID),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewCreateDeliveryPartnerCommand.
func (c CreateDeliveryPartnerCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryPartnerCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c CreateDeliveryPartnerCommand) Principal() kernel.Principal { return c.principal }

// DriverID returns the ID of the delivery partner.
func (c CreateDeliveryPartnerCommand) DriverID() kernel.UUID { return c.driverID }

// Name returns the display name.
func (c CreateDeliveryPartnerCommand) Name() string { return c.name }

// Phone returns the phone number.
func (c CreateDeliveryPartnerCommand) Phone() string { return c.phone }

// VehicleNumber returns the vehicle plate.
func (c CreateDeliveryPartnerCommand) VehicleNumber() string { return c.vehicleNumber }

// VehicleType returns the vehicle kind.
func (c CreateDeliveryPartnerCommand) VehicleType() string { return c.vehicleType }

// Username returns the login name linked to the record.
func (c CreateDeliveryPartnerCommand) Username() string { return c.username }

// CenterID returns the collection center the command targets.
func (c CreateDeliveryPartnerCommand) CenterID() *kernel.UUID { return copyID(c.centerID) }

package commands

import (
	"errors"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand dispatches a COLLECTED donation from its center to a
// recipient with a driver.
type CreateDeliveryCommand struct {
	principal           kernel.Principal
	deliveryID          kernel.UUID
	donationID          kernel.UUID
	driverID            kernel.UUID
	recipientID         kernel.UUID
	scheduledPickupTime *time.Time
	notes               string

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand validates the principal and the four IDs. The
// scheduled pickup time is copied.
func NewCreateDeliveryCommand(
	principal kernel.Principal,
	deliveryID, donationID, driverID, recipientID kernel.UUID,
	scheduledPickupTime *time.Time,
	notes string,
) (CreateDeliveryCommand, error) {
	if err := errors.Join(
		principal.Validate(),
		requireID("deliveryID", deliveryID),
		requireID("donationID", donationID),
		requireID("driverID", driverID),
		requireID("recipientID", recipientID),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	var scheduled *time.Time
	if scheduledPickupTime != nil {
		t := *scheduledPickupTime
		scheduled = &t
	}

	return CreateDeliveryCommand{
		principal:           principal,
		deliveryID:          deliveryID,
		donationID:          donationID,
		driverID:            driverID,
		recipientID:         recipientID,
		scheduledPickupTime: scheduled,
		notes:               notes,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewCreateDeliveryCommand.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c CreateDeliveryCommand) Principal() kernel.Principal { return c.principal }

// DeliveryID returns the ID of the delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// DonationID returns the ID of the donation.
func (c CreateDeliveryCommand) DonationID() kernel.UUID { return c.donationID }

// DriverID returns the ID of the delivery partner.
func (c CreateDeliveryCommand) DriverID() kernel.UUID { return c.driverID }

// RecipientID returns the ID of the recipient.
func (c CreateDeliveryCommand) RecipientID() kernel.UUID { return c.recipientID }

// ScheduledPickupTime returns the planned pickup time, nil when unset.
func (c CreateDeliveryCommand) ScheduledPickupTime() *time.Time { return c.scheduledPickupTime }

// Notes returns free-form notes for the driver.
func (c CreateDeliveryCommand) Notes() string { return c.notes }

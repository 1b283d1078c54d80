package commands

import (
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrDeliveryActionCommandIsNotConstructed = errors.New(
	"DeliveryActionCommand must be created via NewDeliveryActionCommand constructor",
)

// DeliveryActionCommand names a delivery a principal wants to move along.
type DeliveryActionCommand struct {
	principal  kernel.Principal
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeliveryActionCommand validates the principal and the delivery ID.
func NewDeliveryActionCommand(principal kernel.Principal, deliveryID kernel.UUID) (DeliveryActionCommand, error) {
	if err := errors.Join(principal.Validate(), requireID("deliveryID", deliveryID)); err != nil {
		return DeliveryActionCommand{}, err
	}

	return DeliveryActionCommand{
		principal:  principal,
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewDeliveryActionCommand.
func (c DeliveryActionCommand) Validate() error {
	return c.guard.Validate(ErrDeliveryActionCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c DeliveryActionCommand) Principal() kernel.Principal { return c.principal }

// DeliveryID returns the ID of the delivery.
func (c DeliveryActionCommand) DeliveryID() kernel.UUID { return c.deliveryID }

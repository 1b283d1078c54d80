package commands

import (
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/recipient"
	"donations/internal/pkg/guard"
)

var ErrCreateRecipientCommandIsNotConstructed = errors.New(
	"CreateRecipientCommand must be created via NewCreateRecipientCommand constructor",
)

// CreateRecipientCommand registers a recipient organisation.
type CreateRecipientCommand struct {
	principal     kernel.Principal
	recipientID   kernel.UUID
	name          string
	recipientType recipient.Type
	address       string
	contact       recipient.Contact

	guard guard.ConstructorGuard
}

// NewCreateRecipientCommand validates the recipient fields.
func NewCreateRecipientCommand(
	principal kernel.Principal,
	recipientID kernel.UUID,
	name string,
	recipientType recipient.Type,
	address string,
	contact recipient.Contact,
) (CreateRecipientCommand, error) {
	if err := errors.Join(principal.Validate(), requireID("recipientID", recipientID)); err != nil {
		return CreateRecipientCommand{}, err
	}

	return CreateRecipientCommand{
		principal:     principal,
		recipientID:   recipientID,
		name:          name,
		recipientType: recipientType,
		address:       address,
		contact:       contact,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewCreateRecipientCommand.
func (c CreateRecipientCommand) Validate() error {
	return c.guard.Validate(ErrCreateRecipientCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c CreateRecipientCommand) Principal() kernel.Principal { return c.principal }

// RecipientID returns the ID of the recipient.
func (c CreateRecipientCommand) RecipientID() kernel.UUID { return c.recipientID }

// Name returns the display name.
func (c CreateRecipientCommand) Name() string { return c.name }

// Type returns the recipient category.
func (c CreateRecipientCommand) Type() recipient.Type { return c.recipientType }

// Address returns the delivery address.
func (c CreateRecipientCommand) Address() string { return c.address }

// Contact returns the contact details.
func (c CreateRecipientCommand) Contact() recipient.Contact { return c.contact }

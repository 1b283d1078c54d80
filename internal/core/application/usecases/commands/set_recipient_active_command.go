package commands

import (
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrSetRecipientActiveCommandIsNotConstructed = errors.New(
	"SetRecipientActiveCommand must be created via NewSetRecipientActiveCommand constructor",
)

// SetRecipientActiveCommand switches a recipient on or off. Inactive
// recipients cannot receive new deliveries; existing ones are untouched.
type SetRecipientActiveCommand struct {
	principal   kernel.Principal
	recipientID kernel.UUID
	active      bool

	guard guard.ConstructorGuard
}

// NewSetRecipientActiveCommand validates the principal and the recipient ID.
func NewSetRecipientActiveCommand(
	principal kernel.Principal,
	recipientID kernel.UUID,
	active bool,
) (SetRecipientActiveCommand, error) {
	if err := errors.Join(principal.Validate(), requireID("recipientID", recipientID)); err != nil {
		return SetRecipientActiveCommand{}, err
	}

	return SetRecipientActiveCommand{
		principal:   principal,
		recipientID: recipientID,
		active:      active,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewSetRecipientActiveCommand.
func (c SetRecipientActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetRecipientActiveCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c SetRecipientActiveCommand) Principal() kernel.Principal { return c.principal }

// RecipientID returns the ID of the recipient.
func (c SetRecipientActiveCommand) RecipientID() kernel.UUID { return c.recipientID }

// Active reports whether the recipient should accept deliveries.
func (c SetRecipientActiveCommand) Active() bool { return c.active }

package commands

import (
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrWasteActionCommandIsNotConstructed = errors.New(
	"WasteActionCommand must be created via NewWasteActionCommand constructor",
)

// WasteActionCommand names a waste record for the process and delete handlers.
type WasteActionCommand struct {
	principal kernel.Principal
	wasteID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewWasteActionCommand validates the principal and the waste ID.
func NewWasteActionCommand(principal kernel.Principal, wasteID kernel.UUID) (WasteActionCommand, error) {
	if err := errors.Join(principal.Validate(), requireID("wasteID", wasteID)); err != nil {
		return WasteActionCommand{}, err
	}

	return WasteActionCommand{principal: principal, wasteID: wasteID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through NewWasteActionCommand.
func (c WasteActionCommand) Validate() error {
	return c.guard.Validate(ErrWasteActionCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c WasteActionCommand) Principal() kernel.Principal { return c.principal }

// WasteID returns the ID of the waste record.
func (c WasteActionCommand) WasteID() kernel.UUID { return c.wasteID }

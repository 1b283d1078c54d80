package commands

import (
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrUpdateCollectionCenterCommandIsNotConstructed = errors.New(
	"UpdateCollectionCenterCommand must be created via NewUpdateCollectionCenterCommand constructor",
)

// UpdateCollectionCenterCommand renames, relocates, resizes or re-staffs a
// center. The new capacity may not be below the current load.
type UpdateCollectionCenterCommand struct {
	principal     kernel.Principal
	centerID      kernel.UUID
	name          string
	location      string
	maxCapacity   int
	staffUsername string

	guard guard.ConstructorGuard
}

// NewUpdateCollectionCenterCommand validates the center fields.
func NewUpdateCollectionCenterCommand(
	principal kernel.Principal,
	centerID kernel.UUID,
	name, location string,
	maxCapacity int,
	staffUsername string,
) (UpdateCollectionCenterCommand, error) {
	if err := errors.Join(
		principal.Validate(),
		requireID("centerID", centerID),
		validateCenterDetails(name, maxCapacity),
	); err != nil {
		return UpdateCollectionCenterCommand{}, err
	}

	return UpdateCollectionCenterCommand{
		principal:     principal,
		centerID:      centerID,
		name:          name,
		location:      location,
		maxCapacity:   maxCapacity,
		staffUsername: staffUsername,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewUpdateCollectionCenterCommand.
func (c UpdateCollectionCenterCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCollectionCenterCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c UpdateCollectionCenterCommand) Principal() kernel.Principal { return c.principal }

// CenterID returns the collection center the command targets.
func (c UpdateCollectionCenterCommand) CenterID() kernel.UUID { return c.centerID }

// Name returns the display name.
func (c UpdateCollectionCenterCommand) Name() string { return c.name }

// Location returns the location.
func (c UpdateCollectionCenterCommand) Location() string { return c.location }

// MaxCapacity returns the capacity limit in item units.
func (c UpdateCollectionCenterCommand) MaxCapacity() int { return c.maxCapacity }

// StaffUsername returns the username of the staff member running the center.
func (c UpdateCollectionCenterCommand) StaffUsername() string { return c.staffUsername }

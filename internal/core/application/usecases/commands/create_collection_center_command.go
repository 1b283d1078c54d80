package commands

import (
	"errors"
	"fmt"
	"strings"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var ErrCreateCollectionCenterCommandIsNotConstructed = errors.New(
	"CreateCollectionCenterCommand must be created via NewCreateCollectionCenterCommand constructor",
)

// CreateCollectionCenterCommand registers a center. Only administrators may
// create or reconfigure centers.
type CreateCollectionCenterCommand struct {
	principal     kernel.Principal
	centerID      kernel.UUID
	name          string
	location      string
	maxCapacity   int
	staffUsername string

	guard guard.ConstructorGuard
}

// NewCreateCollectionCenterCommand validates the center fields. The staff
// username is optional.
func NewCreateCollectionCenterCommand(
	principal kernel.Principal,
	centerID kernel.UUID,
	name, location string,
	maxCapacity int,
	staffUsername string,
) (CreateCollectionCenterCommand, error) {
	if err := errors.Join(
		principal.Validate(),
		requireID("centerID", centerID),
		validateCenterDetails(name, maxCapacity),
	); err != nil {
		return CreateCollectionCenterCommand{}, err
	}

	return CreateCollectionCenterCommand{
		principal:     principal,
		centerID:      centerID,
		name:          name,
		location:      location,
		maxCapacity:   maxCapacity,
		staffUsername: staffUsername,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewCreateCollectionCenterCommand.
func (c CreateCollectionCenterCommand) Validate() error {
	return c.guard.Validate(ErrCreateCollectionCenterCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c CreateCollectionCenterCommand) Principal() kernel.Principal { return c.principal }

// CenterID returns the collection center the command targets.
func (c CreateCollectionCenterCommand) CenterID() kernel.UUID { return c.centerID }

// Name returns the display name.
func (c CreateCollectionCenterCommand) Name() string { return c.name }

// Location returns the location.
func (c CreateCollectionCenterCommand) Location() string { return c.location }

// MaxCapacity returns the capacity limit in item units.
func (c CreateCollectionCenterCommand) MaxCapacity() int { return c.maxCapacity }

// StaffUsername returns the username of the staff member running the center.
func (c CreateCollectionCenterCommand) StaffUsername() string { return c.staffUsername }

func validateCenterDetails(name string, maxCapacity int) error {
	var errList []error
	if strings.TrimSpace(name) == "" {
		errList = append(errList, center.ErrNameIsRequired)
	}
	if maxCapacity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("maxCapacity is invalid",
			fmt.Errorf("%d is not greater than 0", maxCapacity)))
	}
	return errors.Join(errList...)
}

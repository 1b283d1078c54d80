package commands

import (
	"errors"
	"strings"

	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrCreateDonorCommandIsNotConstructed = errors.New(
	"CreateDonorCommand must be created via NewCreateDonorCommand constructor",
)

// CreateDonorCommand registers a donor. Staff may register anyone; a DONOR
// account may only register the donor record bound to its own username.
type CreateDonorCommand struct {
	principal kernel.Principal
	donorID   kernel.UUID
	name      string
	contact   string
	location  string
	donorType donor.Type
	username  string

	guard guard.ConstructorGuard
}

// NewCreateDonorCommand validates the donor fields.
func NewCreateDonorCommand(
	principal kernel.Principal,
	donorID kernel.UUID,
	name, contact, location string,
	donorType donor.Type,
	username string,
) (CreateDonorCommand, error) {
	if err := errors.Join(principal.Validate(), requireID("donorID", donorID)); err != nil {
		return CreateDonorCommand{}, err
	}
	if strings.TrimSpace(name) == "" {
		return CreateDonorCommand{}, donor.ErrNameIsRequired
	}

	return CreateDonorCommand{
		principal: principal,
		donorID:   donorID,
		name:      name,
		contact:   contact,
		location:  location,
		donorType: donorType,
		username:  username,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewCreateDonorCommand.
func (c CreateDonorCommand) Validate() error {
	return c.guard.Validate(ErrCreateDonorCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c CreateDonorCommand) Principal() kernel.Principal { return c.principal }

// DonorID returns the ID of the donor.
func (c CreateDonorCommand) DonorID() kernel.UUID { return c.donorID }

// Name returns the display name.
func (c CreateDonorCommand) Name() string { return c.name }

// Contact returns the contact details.
func (c CreateDonorCommand) Contact() string { return c.contact }

// Location returns the location.
func (c CreateDonorCommand) Location() string { return c.location }

// DonorType returns the donor category.
func (c CreateDonorCommand) DonorType() donor.Type { return c.donorType }

// Username returns the login name linked to the record.
func (c CreateDonorCommand) Username() string { return c.username }

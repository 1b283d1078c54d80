package commands

import (
	"errors"

	"donations/internal/core/domain/model/content"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrGenerateContentCommandIsNotConstructed = errors.New(
	"GenerateContentCommand must be created via NewGenerateContentCommand constructor",
)

// GenerateContentCommand asks for the THANK_YOU or FOOD_TIPS text of a
// donation. Items default to the donation item name and donorName to the
// donor's registered name.
type GenerateContentCommand struct {
	principal   kernel.Principal
	donationID  kernel.UUID
	contentType content.Type
	items       []string
	donorName   string

	guard guard.ConstructorGuard
}

// NewGenerateContentCommand validates the principal, the donation ID and the
// content type.
func NewGenerateContentCommand(
	principal kernel.Principal,
	donationID kernel.UUID,
	contentType content.Type,
	items []string,
	donorName string,
) (GenerateContentCommand, error) {
	_, typeErr := content.ParseType(string(contentType))
	if err := errors.Join(principal.Validate(), requireID("donationID", donationID), typeErr); err != nil {
		return GenerateContentCommand{}, err
	}

	var kept []string
	for _, item := range items {
		if item != "" {
			kept = append(kept, item)
		}
	}

	return GenerateContentCommand{
		principal:   principal,
		donationID:  donationID,
		contentType: contentType,
		items:       kept,
		donorName:   donorName,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewGenerateContentCommand.
func (c GenerateContentCommand) Validate() error {
	return c.guard.Validate(ErrGenerateContentCommandIsNotConstructed)
}

// Principal returns the caller the command is authorized against.
func (c GenerateContentCommand) Principal() kernel.Principal { return c.principal }

// DonationID returns the ID of the donation.
func (c GenerateContentCommand) DonationID() kernel.UUID { return c.donationID }

// Type returns the kind of content to generate.
func (c GenerateContentCommand) Type() content.Type { return c.contentType }

// Items returns the items content is generated for.
func (c GenerateContentCommand) Items() []string { return append([]string(nil), c.items...) }

// DonorName returns the name printed on generated content.
func (c GenerateContentCommand) DonorName() string { return c.donorName }

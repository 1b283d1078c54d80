// Package content implements GeneratedContent: text produced by the external
// generator for a donation (a thank-you note for the donor or handling tips
// for the goods). At most one record exists per donation and content type.
package content

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var (
	// ErrGeneratedContentIsNotConstructed is returned by Validate for a nil or
	// zero-value record.
	ErrGeneratedContentIsNotConstructed = errors.New("GeneratedContent must be created via NewGeneratedContent constructor")
	ErrTextIsRequired                   = errs.NewValueIsRequiredError("content")
)

// Type selects the prompt used to generate content and is half of the
// per-donation uniqueness key.
type Type string

const (
	// TypeThankYou is a note addressed to the donor.
	TypeThankYou Type = "THANK_YOU"
	// TypeFoodTips is storage and handling advice for the donated goods.
	TypeFoodTips Type = "FOOD_TIPS"
)

// ParseType accepts a content type in any letter case. Unknown names fail with
// errs.ValueIsInvalidError.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeThankYou, TypeFoodTips:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("contentType", fmt.Errorf("%q is not a content type", s))
	}
}

// Source describes where a piece of content came from and what it is about.
type Source struct {
	DonorID      kernel.UUID
	GeneratedBy  string
	CenterName   string
	DonationName string
}

// GeneratedContent is an immutable piece of generated text stored against a
// donation. Once saved it is returned as is and never regenerated.
type GeneratedContent struct {
	id          kernel.UUID
	donationID  kernel.UUID
	contentType Type
	text        string
	items       []string
	source      Source
	generatedAt time.Time
	guard       guard.ConstructorGuard
}

// Snapshot is the persisted form of GeneratedContent.
type Snapshot struct {
	ID          kernel.UUID
	DonationID  kernel.UUID
	Type        Type
	Text        string
	Items       []string
	Source      Source
	GeneratedAt time.Time
}

// NewGeneratedContent validates and wraps freshly generated text. items lists
// the goods the text mentions; it is copied so later changes by the caller do
// not leak in.
func NewGeneratedContent(
	id, donationID kernel.UUID,
	contentType Type,
	text string,
	items []string,
	source Source,
	generatedAt time.Time,
) (*GeneratedContent, error) {
	return Restore(Snapshot{
		ID:          id,
		DonationID:  donationID,
		Type:        contentType,
		Text:        text,
		Items:       items,
		Source:      source,
		GeneratedAt: generatedAt,
	})
}

// Restore rebuilds a record from persistence. It applies the same checks as
// NewGeneratedContent: valid IDs, a known type and non-blank text.
func Restore(s Snapshot) (*GeneratedContent, error) {
	var errList []error
	errList = append(errList, s.ID.Validate())
	if err := s.DonationID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("donationID", err))
	}
	if _, err := ParseType(string(s.Type)); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(s.Text) == "" {
		errList = append(errList, ErrTextIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return &GeneratedContent{
		id:          s.ID,
		donationID:  s.DonationID,
		contentType: s.Type,
		text:        s.Text,
		items:       slices.Clone(s.Items),
		source:      s.Source,
		generatedAt: s.GeneratedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether c was built by NewGeneratedContent or Restore.
func (c *GeneratedContent) Validate() error {
	if c == nil {
		return ErrGeneratedContentIsNotConstructed
	}
	return c.guard.Validate(ErrGeneratedContentIsNotConstructed)
}

// ID returns the record identifier.
func (c *GeneratedContent) ID() kernel.UUID { return c.id }

// DonationID returns the donation the text was generated for.
func (c *GeneratedContent) DonationID() kernel.UUID { return c.donationID }

// Type returns the content type.
func (c *GeneratedContent) Type() Type { return c.contentType }

// Text returns the sanitised generated text.
func (c *GeneratedContent) Text() string { return c.text }

// Items returns a copy of the item names the text refers to.
func (c *GeneratedContent) Items() []string { return slices.Clone(c.items) }

// Source returns who requested the content and what it describes.
func (c *GeneratedContent) Source() Source { return c.source }

// GeneratedAt returns when the generator answered.
func (c *GeneratedContent) GeneratedAt() time.Time { return c.generatedAt }

// Snapshot copies the record for persistence.
func (c *GeneratedContent) Snapshot() Snapshot {
	return Snapshot{
		ID:          c.id,
		DonationID:  c.donationID,
		Type:        c.contentType,
		Text:        c.text,
		Items:       c.Items(),
		Source:      c.source,
		GeneratedAt: c.generatedAt,
	}
}

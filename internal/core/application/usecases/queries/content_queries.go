package queries

import (
	"context"
	"errors"

	"donations/internal/core/domain/model/content"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

// thankYouLimit caps ListMyThankYouMessages.
const thankYouLimit = 5

var ErrGetSavedContentQueryIsNotConstructed = errors.New(
	"GetSavedContentQuery must be created via NewGetSavedContentQuery constructor",
)

// GetSavedContentQuery reads stored content. It never triggers generation.
type GetSavedContentQuery struct {
	principal   kernel.Principal
	donationID  kernel.UUID
	contentType content.Type

	guard guard.ConstructorGuard
}

// NewGetSavedContentQuery validates the principal, the donation id and the
// content type.
func NewGetSavedContentQuery(
	principal kernel.Principal,
	donationID kernel.UUID,
	contentType content.Type,
) (GetSavedContentQuery, error) {
	_, typeErr := content.ParseType(string(contentType))
	if err := errors.Join(principal.Validate(), donationID.Validate(), typeErr); err != nil {
		return GetSavedContentQuery{}, err
	}
	return GetSavedContentQuery{
		principal:   principal,
		donationID:  donationID,
		contentType: contentType,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the query was built by NewGetSavedContentQuery.
func (q GetSavedContentQuery) Validate() error {
	return q.guard.Validate(ErrGetSavedContentQueryIsNotConstructed)
}

// ContentQueryHandler reads stored content and thank-you messages.
type ContentQueryHandler struct {
	readers ReaderFactory
}

// NewContentQueryHandler returns a handler reading through readers.
func NewContentQueryHandler(readers ReaderFactory) ContentQueryHandler {
	return ContentQueryHandler{readers: readers}
}

// GetSaved returns the stored content of the given type for a donation the
// caller may see. It returns a not-found error when nothing was generated yet.
func (h ContentQueryHandler) GetSaved(ctx context.Context, q GetSavedContentQuery) (ContentView, error) {
	if err := q.Validate(); err != nil {
		return ContentView{}, err
	}

	r := h.readers.Reader()
	c, err := r.ContentRepository().GetByDonationAndType(ctx, q.donationID, q.contentType)
	if err != nil {
		return ContentView{}, err
	}
	if !isStaff(q.principal) {
		own, err := ownDonor(ctx, r, q.principal)
		if err != nil {
			return ContentView{}, err
		}
		if !own.ID().IsEqual(c.Source().DonorID) {
			return ContentView{}, errs.NewForbiddenError(q.principal.Username(), "does not own the donation")
		}
	}
	return NewContentView(c), nil
}

// ListMyThankYouMessages returns the newest THANK_YOU texts written for the
// calling donor.
func (h ContentQueryHandler) ListMyThankYouMessages(ctx context.Context, q RegistryQuery) ([]ContentView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	r := h.readers.Reader()
	own, err := ownDonor(ctx, r, q.principal)
	if err != nil {
		return nil, err
	}
	found, err := r.ContentRepository().ListByDonor(ctx, own.ID(), content.TypeThankYou, thankYouLimit)
	if err != nil {
		return nil, err
	}
	return mapAll(found, NewContentView), nil
}

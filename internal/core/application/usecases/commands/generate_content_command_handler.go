package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/content"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/core/ports"
	"donations/internal/pkg/errs"
)

// ErrContentGenerationFailed wraps any failure of the external generator.
// Nothing is stored in that case.
var ErrContentGenerationFailed = errors.New("content generation failed")

// GenerateContentCommandHandler returns the stored content of a donation for
// the requested type, generating and storing it on first use.
//
// The generator is called outside any transaction. The second transaction
// re-checks for content stored concurrently and, if another request won the
// race, returns that record instead.
type GenerateContentCommandHandler struct {
	uowFactory UoWFactory
	access     services.AccessPolicy
	generator  ports.ContentGenerator
	logger     *slog.Logger
}

// NewGenerateContentCommandHandler creates the handler. A nil generator is an
// error; a nil logger falls back to slog.Default.
func NewGenerateContentCommandHandler(
	uowFactory UoWFactory,
	access services.AccessPolicy,
	generator ports.ContentGenerator,
	logger *slog.Logger,
) (GenerateContentCommandHandler, error) {
	if generator == nil {
		return GenerateContentCommandHandler{}, errs.NewValueIsRequiredError("generator")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return GenerateContentCommandHandler{
		uowFactory: uowFactory,
		access:     access,
		generator:  generator,
		logger:     logger.With("component", "content"),
	}, nil
}

// Handle returns the stored content when it exists. Otherwise it calls the
// generator and stores the result. Generator failures are wrapped in
// ErrContentGenerationFailed.
func (h GenerateContentCommandHandler) Handle(ctx context.Context, cmd GenerateContentCommand) (*content.GeneratedContent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	existing, req, source, err := h.prepare(ctx, cmd)
	if err != nil || existing != nil {
		return existing, err
	}

	text, err := h.generator.Generate(ctx, req)
	if err == nil && text == "" {
		err = errors.New("empty response")
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "content generation failed",
			"donation_id", cmd.DonationID().String(), "type", string(cmd.Type()), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrContentGenerationFailed, err)
	}

	generated, err := content.NewGeneratedContent(
		kernel.NewUUID(), cmd.DonationID(), cmd.Type(), text, req.Items, source, time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}
	return h.store(ctx, generated)
}

// prepare loads what the generator needs. When content already exists it is
// returned and the request is left empty.
func (h GenerateContentCommandHandler) prepare(
	ctx context.Context,
	cmd GenerateContentCommand,
) (*content.GeneratedContent, ports.ContentRequest, content.Source, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, ports.ContentRequest{}, content.Source{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := uow.DonationRepository().Get(ctx, cmd.DonationID())
	if err != nil {
		return nil, ports.ContentRequest{}, content.Source{}, err
	}
	owner, err := uow.DonorRepository().Get(ctx, d.DonorID())
	if err != nil {
		return nil, ports.ContentRequest{}, content.Source{}, err
	}
	var c *center.CollectionCenter
	if id := d.CenterID(); id != nil {
		if c, err = uow.CollectionCenterRepository().Get(ctx, *id); err != nil {
			return nil, ports.ContentRequest{}, content.Source{}, err
		}
	}
	if err = h.authorize(cmd.Principal(), owner, c); err != nil {
		return nil, ports.ContentRequest{}, content.Source{}, err
	}

	existing, err := uow.ContentRepository().GetByDonationAndType(ctx, d.ID(), cmd.Type())
	switch {
	case err == nil:
		return existing, ports.ContentRequest{}, content.Source{}, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, ports.ContentRequest{}, content.Source{}, err
	}

	req, source := contentRequest(cmd, d, owner, c)
	return nil, req, source, nil
}

func (h GenerateContentCommandHandler) store(ctx context.Context, generated *content.GeneratedContent) (*content.GeneratedContent, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ContentRepository()
	existing, err := repo.GetByDonationAndType(ctx, generated.DonationID(), generated.Type())
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	if err = repo.Add(ctx, generated); err != nil {
		_ = uow.Rollback(ctx)
		if winner, getErr := h.reread(ctx, generated); getErr == nil {
			return winner, nil
		}
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return generated, nil
}

// reread looks for a record stored by a concurrent request after Add lost
// the unique (donation, type) race.
func (h GenerateContentCommandHandler) reread(ctx context.Context, generated *content.GeneratedContent) (*content.GeneratedContent, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()
	return uow.ContentRepository().GetByDonationAndType(ctx, generated.DonationID(), generated.Type())
}

func (h GenerateContentCommandHandler) authorize(p kernel.Principal, owner *donor.Donor, c *center.CollectionCenter) error {
	if h.access.AuthorizeCenter(p, c) == nil {
		return nil
	}
	if p.HasRole(kernel.RoleDonor) && owner.IsOwnedBy(p.Username()) {
		return nil
	}
	return errs.NewForbiddenError(p.Username(), "may not generate content for this donation")
}

func contentRequest(
	cmd GenerateContentCommand,
	d *donation.Donation,
	owner *donor.Donor,
	c *center.CollectionCenter,
) (ports.ContentRequest, content.Source) {
	items := cmd.Items()
	if len(items) == 0 {
		items = []string{d.ItemName()}
	}
	donorName := cmd.DonorName()
	if donorName == "" {
		donorName = owner.Name()
	}
	centerName := ""
	if c != nil {
		centerName = c.Name()
	}

	req := ports.ContentRequest{
		Type:       cmd.Type(),
		Items:      items,
		DonorName:  donorName,
		CenterName: centerName,
		Date:       d.DonatedAt().Format("January 2, 2006"),
	}
	source := content.Source{
		DonorID:      owner.ID(),
		GeneratedBy:  cmd.Principal().Username(),
		CenterName:   centerName,
		DonationName: d.ItemName(),
	}
	return req, source
}

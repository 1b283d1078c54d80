package recipientrepo

import (
	"context"

	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/recipient"

	"gorm.io/gorm"
)

// GormRecipientRepository implements ports.RecipientRepository using GORM.
type GormRecipientRepository struct {
	db      *gorm.DB
	tracker dbmap.Tracker
}

// NewGormRecipientRepository creates a repository bound to db.
func NewGormRecipientRepository(db *gorm.DB, tracker dbmap.Tracker) *GormRecipientRepository {
	return &GormRecipientRepository{db: db, tracker: tracker}
}

// Add inserts a new recipient.
func (r *GormRecipientRepository) Add(ctx context.Context, aggregate *recipient.Recipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing recipient.
func (r *GormRecipientRepository) Update(ctx context.Context, aggregate *recipient.Recipient) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := dbmap.Update(r.db.WithContext(ctx), &RecipientDTO{}, dto.ID, &dto, "recipient"); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a recipient by ID.
func (r *GormRecipientRepository) Get(ctx context.Context, id kernel.UUID) (*recipient.Recipient, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecipientDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dbmap.NotFound(err, "recipient", id.String())
	}
	return toDomain(dto)
}

// List returns every recipient.
func (r *GormRecipientRepository) List(ctx context.Context, activeOnly bool) ([]*recipient.Recipient, error) {
	query := r.db.WithContext(ctx).Order("name, id")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var dtos []RecipientDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	recipients := make([]*recipient.Recipient, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, rec)
	}
	return recipients, nil
}

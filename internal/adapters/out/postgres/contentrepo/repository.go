package contentrepo

import (
	"context"

	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/content"
	"donations/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormContentRepository implements ports.ContentRepository using GORM. A
// second record for the same donation and type fails on the
// idx_content_donation_type unique index.
type GormContentRepository struct {
	db      *gorm.DB
	tracker dbmap.Tracker
}

// NewGormContentRepository creates a repository bound to db.
func NewGormContentRepository(db *gorm.DB, tracker dbmap.Tracker) *GormContentRepository {
	return &GormContentRepository{db: db, tracker: tracker}
}

// Add inserts a new generated content record.
func (r *GormContentRepository) Add(ctx context.Context, aggregate *content.GeneratedContent) error {
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

// GetByDonationAndType loads the generated content record of one type for a donation.
func (r *GormContentRepository) GetByDonationAndType(
	ctx context.Context,
	donationID kernel.UUID,
	contentType content.Type,
) (*content.GeneratedContent, error) {
	if err := donationID.Validate(); err != nil {
		return nil, err
	}

	var dto ContentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "donation_id = ? AND content_type = ?", donationID.Bytes(), string(contentType)).Error
	if err != nil {
		return nil, dbmap.NotFound(err, "content", donationID.String()+"/"+string(contentType))
	}
	return toDomain(dto)
}

// ListByDonor returns the newest generated content records of one type written for a donor.
func (r *GormContentRepository) ListByDonor(
	ctx context.Context,
	donorID kernel.UUID,
	contentType content.Type,
	limit int,
) ([]*content.GeneratedContent, error) {
	if err := donorID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Where("donor_id = ? AND content_type = ?", donorID.Bytes(), string(contentType)).
		Order("generated_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []ContentDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*content.GeneratedContent, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, c)
	}
	return records, nil
}

// DeleteByDonation removes every generated content record of a donation.
func (r *GormContentRepository) DeleteByDonation(ctx context.Context, donationID kernel.UUID) error {
	if err := donationID.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("donation_id = ?", donationID.Bytes()).Delete(&ContentDTO{}).Error
}

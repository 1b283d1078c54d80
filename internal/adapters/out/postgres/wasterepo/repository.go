package wasterepo

import (
	"context"

	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/waste"
	"donations/internal/core/ports"

	"gorm.io/gorm"
)

// GormWasteRepository implements ports.WasteRepository using GORM.
type GormWasteRepository struct {
	db      *gorm.DB
	tracker dbmap.Tracker
}

// NewGormWasteRepository creates a repository bound to db.
func NewGormWasteRepository(db *gorm.DB, tracker dbmap.Tracker) *GormWasteRepository {
	return &GormWasteRepository{db: db, tracker: tracker}
}

// Add inserts a new waste record.
func (r *GormWasteRepository) Add(ctx context.Context, aggregate *waste.Waste) error {
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

// Update saves an existing waste record.
func (r *GormWasteRepository) Update(ctx context.Context, aggregate *waste.Waste) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := dbmap.Update(r.db.WithContext(ctx), &WasteDTO{}, dto.ID, &dto, "waste"); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a waste record by ID.
func (r *GormWasteRepository) Get(ctx context.Context, id kernel.UUID) (*waste.Waste, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WasteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dbmap.NotFound(err, "waste", id.String())
	}
	return toDomain(dto)
}

// Find returns matching records, most recently recorded first.
func (r *GormWasteRepository) Find(ctx context.Context, filter ports.WasteFilter) ([]*waste.Waste, error) {
	query := r.db.WithContext(ctx).Order("waste_date DESC, id DESC")
	if filter.DonationID != nil {
		query = query.Where("donation_id = ?", filter.DonationID.Bytes())
	}
	if filter.CenterID != nil {
		query = query.Where("center_id = ?", filter.CenterID.Bytes())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var dtos []WasteDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*waste.Waste, 0, len(dtos))
	for _, dto := range dtos {
		w, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, w)
	}
	return records, nil
}

// Delete removes a waste record by ID.
func (r *GormWasteRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return dbmap.Delete(r.db.WithContext(ctx), &WasteDTO{}, id.Bytes(), "waste")
}

package donorrepo

import (
	"context"

	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormDonorRepository implements ports.DonorRepository using GORM.
type GormDonorRepository struct {
	db      *gorm.DB
	tracker dbmap.Tracker
}

// NewGormDonorRepository creates a repository bound to db.
func NewGormDonorRepository(db *gorm.DB, tracker dbmap.Tracker) *GormDonorRepository {
	return &GormDonorRepository{db: db, tracker: tracker}
}

// Add inserts a new donor.
func (r *GormDonorRepository) Add(ctx context.Context, aggregate *donor.Donor) error {
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

// Get loads a donor by ID.
func (r *GormDonorRepository) Get(ctx context.Context, id kernel.UUID) (*donor.Donor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DonorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dbmap.NotFound(err, "donor", id.String())
	}
	return toDomain(dto)
}

// GetByUsername loads the donor linked to a login name.
func (r *GormDonorRepository) GetByUsername(ctx context.Context, username string) (*donor.Donor, error) {
	var dto DonorDTO
	if err := r.db.WithContext(ctx).Order("name").First(&dto, "username = ?", username).Error; err != nil {
		return nil, dbmap.NotFound(err, "donor", username)
	}
	return toDomain(dto)
}

// List returns every donor.
func (r *GormDonorRepository) List(ctx context.Context) ([]*donor.Donor, error) {
	var dtos []DonorDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	donors := make([]*donor.Donor, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}
	return donors, nil
}

// Delete removes a donor by ID.
func (r *GormDonorRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return dbmap.Delete(r.db.WithContext(ctx), &DonorDTO{}, id.Bytes(), "donor")
}

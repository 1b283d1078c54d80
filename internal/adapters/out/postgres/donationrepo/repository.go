package donationrepo

import (
	"context"

	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDonationRepository implements ports.DonationRepository using GORM.
type GormDonationRepository struct {
	db      *gorm.DB
	tracker dbmap.Tracker
}

// NewGormDonationRepository creates a repository bound to db.
func NewGormDonationRepository(db *gorm.DB, tracker dbmap.Tracker) *GormDonationRepository {
	return &GormDonationRepository{db: db, tracker: tracker}
}

// Add inserts a new donation.
func (r *GormDonationRepository) Add(ctx context.Context, aggregate *donation.Donation) error {
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

// Update saves an existing donation.
func (r *GormDonationRepository) Update(ctx context.Context, aggregate *donation.Donation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := dbmap.Update(r.db.WithContext(ctx), &DonationDTO{}, dto.ID, &dto, "donation"); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a donation by ID.
func (r *GormDonationRepository) Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate reads the donation with SELECT ... FOR UPDATE. The row stays
// locked until the surrounding transaction commits or rolls back, so every
// status or center change of one donation is applied to its latest state.
func (r *GormDonationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormDonationRepository) get(db *gorm.DB, id kernel.UUID) (*donation.Donation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DonationDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dbmap.NotFound(err, "donation", id.String())
	}
	return toDomain(dto)
}

// Find returns the donations matching filter.
func (r *GormDonationRepository) Find(ctx context.Context, filter ports.DonationFilter) ([]*donation.Donation, error) {
	query := r.db.WithContext(ctx).Order("donated_at DESC, id DESC")
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.DonorID != nil {
		query = query.Where("donor_id = ?", filter.DonorID.Bytes())
	}
	if filter.CenterID != nil {
		query = query.Where("center_id = ?", filter.CenterID.Bytes())
	}

	var dtos []DonationDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	donations := make([]*donation.Donation, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, nil
}

// Delete removes a donation by ID.
func (r *GormDonationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return dbmap.Delete(r.db.WithContext(ctx), &DonationDTO{}, id.Bytes(), "donation")
}

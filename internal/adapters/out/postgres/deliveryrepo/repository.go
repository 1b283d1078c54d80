package deliveryrepo

import (
	"context"
	"errors"

	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/delivery"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const newestFirst = "created_at DESC, id DESC"

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker dbmap.Tracker
}

// NewGormDeliveryRepository creates a repository bound to db.
func NewGormDeliveryRepository(db *gorm.DB, tracker dbmap.Tracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db, tracker: tracker}
}

// Add inserts a new delivery.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
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

// Update saves an existing delivery.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := dbmap.Update(r.db.WithContext(ctx), &DeliveryDTO{}, dto.ID, &dto, "delivery"); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate reads the delivery with a row lock held until the transaction ends.
func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormDeliveryRepository) get(db *gorm.DB, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dbmap.NotFound(err, "delivery", id.String())
	}
	return toDomain(dto)
}

// Find returns the deliveries matching filter.
func (r *GormDeliveryRepository) Find(ctx context.Context, filter ports.DeliveryFilter) ([]*delivery.Delivery, error) {
	query := r.db.WithContext(ctx).Order(newestFirst)
	if filter.DonationID != nil {
		query = query.Where("donation_id = ?", filter.DonationID.Bytes())
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", filter.DriverID.Bytes())
	}
	if filter.CenterID != nil {
		query = query.Where("from_center_id = ?", filter.CenterID.Bytes())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var dtos []DeliveryDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}

// FindLatestByDonation returns the newest delivery of a donation, or nil.
func (r *GormDeliveryRepository) FindLatestByDonation(ctx context.Context, donationID kernel.UUID) (*delivery.Delivery, error) {
	if err := donationID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Order(newestFirst).
		First(&dto, "donation_id = ?", donationID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(dto)
}

// Delete removes a delivery by ID.
func (r *GormDeliveryRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return dbmap.Delete(r.db.WithContext(ctx), &DeliveryDTO{}, id.Bytes(), "delivery")
}

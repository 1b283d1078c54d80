package driverrepo

import (
	"context"

	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryPartnerRepository implements ports.DeliveryPartnerRepository using GORM.
type GormDeliveryPartnerRepository struct {
	db      *gorm.DB
	tracker dbmap.Tracker
}

// NewGormDeliveryPartnerRepository creates a repository bound to db.
func NewGormDeliveryPartnerRepository(db *gorm.DB, tracker dbmap.Tracker) *GormDeliveryPartnerRepository {
	return &GormDeliveryPartnerRepository{db: db, tracker: tracker}
}

// Add inserts a new delivery partner.
func (r *GormDeliveryPartnerRepository) Add(ctx context.Context, aggregate *driver.DeliveryPartner) error {
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

// Update saves an existing delivery partner.
func (r *GormDeliveryPartnerRepository) Update(ctx context.Context, aggregate *driver.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := dbmap.Update(r.db.WithContext(ctx), &DeliveryPartnerDTO{}, dto.ID, &dto, "delivery partner"); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a delivery partner by ID.
func (r *GormDeliveryPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*driver.DeliveryPartner, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the driver row until the transaction ends. Reserving a
// driver reads availability through it so two deliveries cannot both take it.
func (r *GormDeliveryPartnerRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.DeliveryPartner, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormDeliveryPartnerRepository) get(db *gorm.DB, id kernel.UUID) (*driver.DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryPartnerDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dbmap.NotFound(err, "delivery partner", id.String())
	}
	return toDomain(dto)
}

// GetByUsername loads the delivery partner linked to a login name.
func (r *GormDeliveryPartnerRepository) GetByUsername(ctx context.Context, username string) (*driver.DeliveryPartner, error) {
	var dto DeliveryPartnerDTO
	if err := r.db.WithContext(ctx).Order("name").First(&dto, "username = ?", username).Error; err != nil {
		return nil, dbmap.NotFound(err, "delivery partner", username)
	}
	return toDomain(dto)
}

// List returns every delivery partner.
func (r *GormDeliveryPartnerRepository) List(ctx context.Context, availableOnly bool) ([]*driver.DeliveryPartner, error) {
	query := r.db.WithContext(ctx).Order("name, id")
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}

	var dtos []DeliveryPartnerDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	partners := make([]*driver.DeliveryPartner, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, nil
}

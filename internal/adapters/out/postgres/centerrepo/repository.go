package centerrepo

import (
	"context"

	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCenterRepository implements ports.CollectionCenterRepository using GORM.
type GormCenterRepository struct {
	db      *gorm.DB
	tracker dbmap.Tracker
}

// NewGormCenterRepository creates a repository bound to db.
func NewGormCenterRepository(db *gorm.DB, tracker dbmap.Tracker) *GormCenterRepository {
	return &GormCenterRepository{db: db, tracker: tracker}
}

// Add inserts a new collection center.
func (r *GormCenterRepository) Add(ctx context.Context, aggregate *center.CollectionCenter) error {
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

// Update saves an existing collection center.
func (r *GormCenterRepository) Update(ctx context.Context, aggregate *center.CollectionCenter) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := dbmap.Update(r.db.WithContext(ctx), &CenterDTO{}, dto.ID, &dto, "center"); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a collection center by ID.
func (r *GormCenterRepository) Get(ctx context.Context, id kernel.UUID) (*center.CollectionCenter, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock (SELECT ... FOR UPDATE) that lasts until the
// transaction the repository is bound to ends.
func (r *GormCenterRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*center.CollectionCenter, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormCenterRepository) get(db *gorm.DB, id kernel.UUID) (*center.CollectionCenter, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CenterDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dbmap.NotFound(err, "center", id.String())
	}
	return toDomain(dto)
}

// GetByStaffUsername loads the collection center run by the given staff member.
func (r *GormCenterRepository) GetByStaffUsername(ctx context.Context, username string) (*center.CollectionCenter, error) {
	var dto CenterDTO
	if err := r.db.WithContext(ctx).Order("name").First(&dto, "staff_username = ?", username).Error; err != nil {
		return nil, dbmap.NotFound(err, "center", username)
	}
	return toDomain(dto)
}

// List returns every collection center.
func (r *GormCenterRepository) List(ctx context.Context) ([]*center.CollectionCenter, error) {
	var dtos []CenterDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	centers := make([]*center.CollectionCenter, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		centers = append(centers, c)
	}
	return centers, nil
}

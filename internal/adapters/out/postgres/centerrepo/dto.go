package centerrepo

import (
	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/center"

	"github.com/google/uuid"
)

// CenterDTO is the row layout of the collection centers table.
type CenterDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"not null;index"`
	Location      string
	MaxCapacity   int    `gorm:"not null"`
	CurrentLoad   int    `gorm:"not null;default:0"`
	StaffUsername string `gorm:"index"`
}

// TableName pins the table name used by GORM.
func (CenterDTO) TableName() string {
	return "collection_centers"
}

func fromDomain(aggregate *center.CollectionCenter) CenterDTO {
	s := aggregate.Snapshot()
	return CenterDTO{
		ID:            s.ID.Bytes(),
		Name:          s.Name,
		Location:      s.Location,
		MaxCapacity:   s.MaxCapacity,
		CurrentLoad:   s.CurrentLoad,
		StaffUsername: s.StaffUsername,
	}
}

func toDomain(dto CenterDTO) (*center.CollectionCenter, error) {
	id, err := dbmap.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	return center.Restore(center.Snapshot{
		ID:            id,
		Name:          dto.Name,
		Location:      dto.Location,
		MaxCapacity:   dto.MaxCapacity,
		CurrentLoad:   dto.CurrentLoad,
		StaffUsername: dto.StaffUsername,
	})
}

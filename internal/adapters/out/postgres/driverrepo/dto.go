package driverrepo

import (
	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/driver"

	"github.com/google/uuid"
)

// DeliveryPartnerDTO is the row layout of the delivery partners table.
type DeliveryPartnerDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"not null;index"`
	Phone         string
	VehicleNumber string
	VehicleType   string
	IsAvailable   bool       `gorm:"not null;index"`
	CenterID      *uuid.UUID `gorm:"type:uuid;index"`
	Username      string     `gorm:"index"`
}

// TableName pins the table name used by GORM.
func (DeliveryPartnerDTO) TableName() string {
	return "delivery_partners"
}

func fromDomain(aggregate *driver.DeliveryPartner) DeliveryPartnerDTO {
	s := aggregate.Snapshot()
	return DeliveryPartnerDTO{
		ID:            s.ID.Bytes(),
		Name:          s.Name,
		Phone:         s.Phone,
		VehicleNumber: s.VehicleNumber,
		VehicleType:   s.VehicleType,
		IsAvailable:   s.IsAvailable,
		CenterID:      dbmap.OptionalRaw(s.CenterID),
		Username:      s.Username,
	}
}

func toDomain(dto DeliveryPartnerDTO) (*driver.DeliveryPartner, error) {
	id, err := dbmap.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	centerID, err := dbmap.OptionalID(dto.CenterID)
	if err != nil {
		return nil, err
	}
	return driver.Restore(driver.Snapshot{
		ID:            id,
		Name:          dto.Name,
		Phone:         dto.Phone,
		VehicleNumber: dto.VehicleNumber,
		VehicleType:   dto.VehicleType,
		IsAvailable:   dto.IsAvailable,
		CenterID:      centerID,
		Username:      dto.Username,
	})
}

package deliveryrepo

import (
	"time"

	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/delivery"

	"github.com/google/uuid"
)

// DeliveryDTO is the row layout of the deliveries table.
type DeliveryDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DonationID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	FromCenterID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID            *uuid.UUID `gorm:"type:uuid;index"`
	RecipientID         *uuid.UUID `gorm:"type:uuid"`
	Status              string     `gorm:"not null;index"`
	CreatedAt           time.Time  `gorm:"not null;index"`
	ScheduledPickupTime *time.Time
	ActualPickupTime    *time.Time
	DeliveredTime       *time.Time
	Notes               string
}

// TableName pins the table name used by GORM.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	s := aggregate.Snapshot()
	return DeliveryDTO{
		ID:                  s.ID.Bytes(),
		DonationID:          s.DonationID.Bytes(),
		FromCenterID:        s.FromCenterID.Bytes(),
		DriverID:            dbmap.OptionalRaw(s.DriverID),
		RecipientID:         dbmap.OptionalRaw(s.RecipientID),
		Status:              s.Status.String(),
		CreatedAt:           s.CreatedAt.UTC(),
		ScheduledPickupTime: dbmap.OptionalTime(s.ScheduledPickupTime),
		ActualPickupTime:    dbmap.OptionalTime(s.ActualPickupTime),
		DeliveredTime:       dbmap.OptionalTime(s.DeliveredTime),
		Notes:               s.Notes,
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := dbmap.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	donationID, err := dbmap.ID(dto.DonationID)
	if err != nil {
		return nil, err
	}
	fromCenterID, err := dbmap.ID(dto.FromCenterID)
	if err != nil {
		return nil, err
	}
	driverID, err := dbmap.OptionalID(dto.DriverID)
	if err != nil {
		return nil, err
	}
	recipientID, err := dbmap.OptionalID(dto.RecipientID)
	if err != nil {
		return nil, err
	}
	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return delivery.Restore(delivery.Snapshot{
		ID:                  id,
		DonationID:          donationID,
		FromCenterID:        fromCenterID,
		DriverID:            driverID,
		RecipientID:         recipientID,
		Status:              status,
		CreatedAt:           dto.CreatedAt.UTC(),
		ScheduledPickupTime: dbmap.OptionalTime(dto.ScheduledPickupTime),
		ActualPickupTime:    dbmap.OptionalTime(dto.ActualPickupTime),
		DeliveredTime:       dbmap.OptionalTime(dto.DeliveredTime),
		Notes:               dto.Notes,
	})
}

package wasterepo

import (
	"time"

	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/waste"

	"github.com/google/uuid"
)

// WasteDTO is the row layout of the waste records table.
type WasteDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DonationID uuid.UUID `gorm:"type:uuid;not null;index"`
	CenterID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemName   string    `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
	Unit       string    `gorm:"not null"`
	RecordedAt time.Time `gorm:"column:waste_date;not null;index"`
	Status     string    `gorm:"not null;index"`
}

// TableName pins the table name used by GORM.
func (WasteDTO) TableName() string {
	return "waste"
}

func fromDomain(aggregate *waste.Waste) WasteDTO {
	s := aggregate.Snapshot()
	return WasteDTO{
		ID:         s.ID.Bytes(),
		DonationID: s.DonationID.Bytes(),
		CenterID:   s.CenterID.Bytes(),
		ItemName:   s.ItemName,
		Quantity:   s.Quantity,
		Unit:       s.Unit.String(),
		RecordedAt: s.RecordedAt.UTC(),
		Status:     s.Status.String(),
	}
}

func toDomain(dto WasteDTO) (*waste.Waste, error) {
	id, err := dbmap.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	donationID, err := dbmap.ID(dto.DonationID)
	if err != nil {
		return nil, err
	}
	centerID, err := dbmap.ID(dto.CenterID)
	if err != nil {
		return nil, err
	}
	status, err := waste.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return waste.Restore(waste.Snapshot{
		ID:         id,
		DonationID: donationID,
		CenterID:   centerID,
		ItemName:   dto.ItemName,
		Quantity:   dto.Quantity,
		Unit:       kernel.ParseUnit(dto.Unit),
		RecordedAt: dto.RecordedAt.UTC(),
		Status:     status,
	})
}

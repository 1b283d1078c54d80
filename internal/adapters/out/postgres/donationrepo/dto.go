package donationrepo

import (
	"time"

	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DonationDTO is the row layout of the donations table.
type DonationDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DonorID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	CenterID  *uuid.UUID `gorm:"type:uuid;index"`
	ItemName  string     `gorm:"not null"`
	Quantity  int        `gorm:"not null"`
	Unit      string     `gorm:"not null"`
	DonatedAt time.Time  `gorm:"not null;index"`
	Status    string     `gorm:"not null;index"`
}

// TableName pins the table name used by GORM.
func (DonationDTO) TableName() string {
	return "donations"
}

func fromDomain(aggregate *donation.Donation) DonationDTO {
	s := aggregate.Snapshot()
	return DonationDTO{
		ID:        s.ID.Bytes(),
		DonorID:   s.DonorID.Bytes(),
		CenterID:  dbmap.OptionalRaw(s.CenterID),
		ItemName:  s.ItemName,
		Quantity:  s.Quantity,
		Unit:      s.Unit.String(),
		DonatedAt: s.DonatedAt.UTC(),
		Status:    s.Status.String(),
	}
}

func toDomain(dto DonationDTO) (*donation.Donation, error) {
	id, err := dbmap.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	donorID, err := dbmap.ID(dto.DonorID)
	if err != nil {
		return nil, err
	}
	centerID, err := dbmap.OptionalID(dto.CenterID)
	if err != nil {
		return nil, err
	}
	status, err := donation.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return donation.Restore(donation.Snapshot{
		ID:        id,
		DonorID:   donorID,
		CenterID:  centerID,
		ItemName:  dto.ItemName,
		Quantity:  dto.Quantity,
		Unit:      kernel.ParseUnit(dto.Unit),
		DonatedAt: dto.DonatedAt.UTC(),
		Status:    status,
	})
}

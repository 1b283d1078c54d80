package donorrepo

import (
	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/donor"

	"github.com/google/uuid"
)

// DonorDTO is the row layout of the donors table.
type DonorDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"not null;index"`
	Contact  string
	Location string
	Type     string `gorm:"column:donor_type"`
	Username string `gorm:"index"`
}

// TableName pins the table name used by GORM.
func (DonorDTO) TableName() string {
	return "donors"
}

func fromDomain(aggregate *donor.Donor) DonorDTO {
	s := aggregate.Snapshot()
	return DonorDTO{
		ID:       s.ID.Bytes(),
		Name:     s.Name,
		Contact:  s.Contact,
		Location: s.Location,
		Type:     string(s.Type),
		Username: s.Username,
	}
}

func toDomain(dto DonorDTO) (*donor.Donor, error) {
	id, err := dbmap.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	return donor.Restore(donor.Snapshot{
		ID:       id,
		Name:     dto.Name,
		Contact:  dto.Contact,
		Location: dto.Location,
		Type:     donor.ParseType(dto.Type),
		Username: dto.Username,
	})
}

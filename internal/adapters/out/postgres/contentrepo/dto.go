package contentrepo

import (
	"time"

	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/content"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ContentDTO is the row layout of the generated content records table.
type ContentDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	DonationID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_content_donation_type"`
	Type         string         `gorm:"column:content_type;not null;uniqueIndex:idx_content_donation_type"`
	Text         string         `gorm:"column:content;type:text;not null"`
	Items        pq.StringArray `gorm:"type:text[]"`
	DonorID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	GeneratedBy  string
	CenterName   string
	DonationName string
	GeneratedAt  time.Time `gorm:"not null;index"`
}

// TableName pins the table name used by GORM.
func (ContentDTO) TableName() string {
	return "generated_content"
}

func fromDomain(aggregate *content.GeneratedContent) ContentDTO {
	s := aggregate.Snapshot()
	return ContentDTO{
		ID:           s.ID.Bytes(),
		DonationID:   s.DonationID.Bytes(),
		Type:         string(s.Type),
		Text:         s.Text,
		Items:        pq.StringArray(s.Items),
		DonorID:      s.Source.DonorID.Bytes(),
		GeneratedBy:  s.Source.GeneratedBy,
		CenterName:   s.Source.CenterName,
		DonationName: s.Source.DonationName,
		GeneratedAt:  s.GeneratedAt.UTC(),
	}
}

func toDomain(dto ContentDTO) (*content.GeneratedContent, error) {
	id, err := dbmap.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	donationID, err := dbmap.ID(dto.DonationID)
	if err != nil {
		return nil, err
	}
	donorID, err := dbmap.ID(dto.DonorID)
	if err != nil {
		return nil, err
	}
	contentType, err := content.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	return content.Restore(content.Snapshot{
		ID:         id,
		DonationID: donationID,
		Type:       contentType,
		Text:       dto.Text,
		Items:      []string(dto.Items),
		Source: content.Source{
			DonorID:      donorID,
			GeneratedBy:  dto.GeneratedBy,
			CenterName:   dto.CenterName,
			DonationName: dto.DonationName,
		},
		GeneratedAt: dto.GeneratedAt.UTC(),
	})
}

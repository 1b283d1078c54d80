package recipientrepo

import (
	"donations/internal/adapters/out/postgres/dbmap"
	"donations/internal/core/domain/model/recipient"

	"github.com/google/uuid"
)

// ContactDTO is the row layout of the recipients table.
type ContactDTO struct {
	Person string
	Phone  string
	Email  string
}

// RecipientDTO is the row layout of the recipients table.
type RecipientDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"not null;index"`
	Type     string    `gorm:"column:recipient_type"`
	Address  string
	Contact  ContactDTO `gorm:"embedded;embeddedPrefix:contact_"`
	IsActive bool       `gorm:"not null;index"`
}

// TableName pins the table name used by GORM.
func (RecipientDTO) TableName() string {
	return "recipients"
}

func fromDomain(aggregate *recipient.Recipient) RecipientDTO {
	s := aggregate.Snapshot()
	return RecipientDTO{
		ID:      s.ID.Bytes(),
		Name:    s.Name,
		Type:    string(s.Type),
		Address: s.Address,
		Contact: ContactDTO{
			Person: s.Contact.Person,
			Phone:  s.Contact.Phone,
			Email:  s.Contact.Email,
		},
		IsActive: s.IsActive,
	}
}

func toDomain(dto RecipientDTO) (*recipient.Recipient, error) {
	id, err := dbmap.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	return recipient.Restore(recipient.Snapshot{
		ID:      id,
		Name:    dto.Name,
		Type:    recipient.ParseType(dto.Type),
		Address: dto.Address,
		Contact: recipient.Contact{
			Person: dto.Contact.Person,
			Phone:  dto.Contact.Phone,
			Email:  dto.Contact.Email,
		},
		IsActive: dto.IsActive,
	})
}

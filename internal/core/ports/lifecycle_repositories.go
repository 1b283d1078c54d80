package ports

import (
	"context"

	"donations/internal/core/domain/model/content"
	"donations/internal/core/domain/model/delivery"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/waste"
)

// DonationFilter narrows DonationRepository.Find. Nil fields match everything.
type DonationFilter struct {
	Status   *donation.Status
	DonorID  *kernel.UUID
	CenterID *kernel.UUID
}

// DonationRepository persists donations.
type DonationRepository interface {
	Add(ctx context.Context, aggregate *donation.Donation) error
	Update(ctx context.Context, aggregate *donation.Donation) error
	Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error)
	// GetForUpdate reads the donation and locks it for the rest of the unit of
	// work. Lock order across handlers is donation, delivery, center, driver.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*donation.Donation, error)
	// Find returns matching donations, newest first.
	Find(ctx context.Context, filter DonationFilter) ([]*donation.Donation, error)
	Delete(ctx context.Context, id kernel.UUID) error
}

// DeliveryFilter narrows DeliveryRepository.Find. Nil fields match everything.
type DeliveryFilter struct {
	DonationID *kernel.UUID
	DriverID   *kernel.UUID
	CenterID   *kernel.UUID
	Status     *delivery.Status
}

// DeliveryRepository persists deliveries.
type DeliveryRepository interface {
	Add(ctx context.Context, aggregate *delivery.Delivery) error
	Update(ctx context.Context, aggregate *delivery.Delivery) error
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
	// GetForUpdate reads the delivery and locks it for the rest of the unit of work.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
	// Find returns matching deliveries, newest first.
	Find(ctx context.Context, filter DeliveryFilter) ([]*delivery.Delivery, error)
	// FindLatestByDonation returns the most recently created delivery of the
	// donation, or nil without error when the donation never had one.
	FindLatestByDonation(ctx context.Context, donationID kernel.UUID) (*delivery.Delivery, error)
	Delete(ctx context.Context, id kernel.UUID) error
}

// WasteFilter narrows WasteRepository.Find. Nil fields match everything.
type WasteFilter struct {
	DonationID *kernel.UUID
	CenterID   *kernel.UUID
	Status     *waste.Status
}

// WasteRepository persists waste records.
type WasteRepository interface {
	Add(ctx context.Context, aggregate *waste.Waste) error
	Update(ctx context.Context, aggregate *waste.Waste) error
	Get(ctx context.Context, id kernel.UUID) (*waste.Waste, error)
	Find(ctx context.Context, filter WasteFilter) ([]*waste.Waste, error)
	Delete(ctx context.Context, id kernel.UUID) error
}

// ContentRepository persists generated content. Add fails when content of the
// same type already exists for the donation.
type ContentRepository interface {
	Add(ctx context.Context, aggregate *content.GeneratedContent) error
	// GetByDonationAndType returns errs.ObjectNotFoundError when no content was saved yet.
	GetByDonationAndType(ctx context.Context, donationID kernel.UUID, contentType content.Type) (*content.GeneratedContent, error)
	// ListByDonor returns up to limit records, newest first.
	ListByDonor(ctx context.Context, donorID kernel.UUID, contentType content.Type, limit int) ([]*content.GeneratedContent, error)
	DeleteByDonation(ctx context.Context, donationID kernel.UUID) error
}

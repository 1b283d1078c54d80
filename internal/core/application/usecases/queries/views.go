package queries

import (
	"time"

	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/content"
	"donations/internal/core/domain/model/delivery"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/recipient"
	"donations/internal/core/domain/model/waste"
)

// DonationView is the read model of a donation.
type DonationView struct {
	ID        kernel.UUID
	DonorID   kernel.UUID
	CenterID  *kernel.UUID
	ItemName  string
	Quantity  int
	Unit      kernel.Unit
	DonatedAt time.Time
	Status    string
}

func newDonationView(d *donation.Donation) DonationView {
	return DonationView{
		ID:        d.ID(),
		DonorID:   d.DonorID(),
		CenterID:  d.CenterID(),
		ItemName:  d.ItemName(),
		Quantity:  d.Quantity(),
		Unit:      d.Unit(),
		DonatedAt: d.DonatedAt(),
		Status:    d.Status().String(),
	}
}

// DeliveryView is the read model of a delivery. Timestamps are nil until the
// matching transition happened.
type DeliveryView struct {
	ID                  kernel.UUID
	DonationID          kernel.UUID
	FromCenterID        kernel.UUID
	DriverID            *kernel.UUID
	RecipientID         *kernel.UUID
	Status              string
	CreatedAt           time.Time
	ScheduledPickupTime *time.Time
	ActualPickupTime    *time.Time
	DeliveredTime       *time.Time
	Notes               string
}

func newDeliveryView(d *delivery.Delivery) DeliveryView {
	return DeliveryView{
		ID:                  d.ID(),
		DonationID:          d.DonationID(),
		FromCenterID:        d.FromCenterID(),
		DriverID:            d.DriverID(),
		RecipientID:         d.RecipientID(),
		Status:              d.Status().String(),
		CreatedAt:           d.CreatedAt(),
		ScheduledPickupTime: d.ScheduledPickupTime(),
		ActualPickupTime:    d.ActualPickupTime(),
		DeliveredTime:       d.DeliveredTime(),
		Notes:               d.Notes(),
	}
}

// CenterView carries the center with its current load.
type CenterView struct {
	ID                kernel.UUID
	Name              string
	Location          string
	MaxCapacity       int
	CurrentLoad       int
	AvailableCapacity int
	StaffUsername     string
}

func newCenterView(c *center.CollectionCenter) CenterView {
	return CenterView{
		ID:                c.ID(),
		Name:              c.Name(),
		Location:          c.Location(),
		MaxCapacity:       c.MaxCapacity(),
		CurrentLoad:       c.CurrentLoad(),
		AvailableCapacity: c.AvailableCapacity(),
		StaffUsername:     c.StaffUsername(),
	}
}

// DonorView is the read model of a donor.
type DonorView struct {
	ID       kernel.UUID
	Name     string
	Contact  string
	Location string
	Type     donor.Type
	Username string
}

func newDonorView(d *donor.Donor) DonorView {
	return DonorView{
		ID:       d.ID(),
		Name:     d.Name(),
		Contact:  d.Contact(),
		Location: d.Location(),
		Type:     d.Type(),
		Username: d.Username(),
	}
}

// DeliveryPartnerView is the read model of a driver.
type DeliveryPartnerView struct {
	ID            kernel.UUID
	Name          string
	Phone         string
	VehicleNumber string
	VehicleType   string
	IsAvailable   bool
	CenterID      *kernel.UUID
	Username      string
}

func newDeliveryPartnerView(p *driver.DeliveryPartner) DeliveryPartnerView {
	return DeliveryPartnerView{
		ID:            p.ID(),
		Name:          p.Name(),
		Phone:         p.Phone(),
		VehicleNumber: p.VehicleNumber(),
		VehicleType:   p.VehicleType(),
		IsAvailable:   p.IsAvailable(),
		CenterID:      p.CenterID(),
		Username:      p.Username(),
	}
}

// RecipientView is the read model of a recipient.
type RecipientView struct {
	ID       kernel.UUID
	Name     string
	Type     recipient.Type
	Address  string
	Contact  recipient.Contact
	IsActive bool
}

func newRecipientView(r *recipient.Recipient) RecipientView {
	return RecipientView{
		ID:       r.ID(),
		Name:     r.Name(),
		Type:     r.Type(),
		Address:  r.Address(),
		Contact:  r.Contact(),
		IsActive: r.IsActive(),
	}
}

// WasteView is the read model of a waste record.
type WasteView struct {
	ID         kernel.UUID
	DonationID kernel.UUID
	CenterID   kernel.UUID
	ItemName   string
	Quantity   int
	Unit       kernel.Unit
	RecordedAt time.Time
	Status     string
}

func newWasteView(w *waste.Waste) WasteView {
	return WasteView{
		ID:         w.ID(),
		DonationID: w.DonationID(),
		CenterID:   w.CenterID(),
		ItemName:   w.ItemName(),
		Quantity:   w.Quantity(),
		Unit:       w.Unit(),
		RecordedAt: w.RecordedAt(),
		Status:     w.Status().String(),
	}
}

// ContentView is the read model of generated content.
type ContentView struct {
	ID           kernel.UUID
	DonationID   kernel.UUID
	Type         content.Type
	Text         string
	Items        []string
	DonorID      kernel.UUID
	GeneratedBy  string
	CenterName   string
	DonationName string
	GeneratedAt  time.Time
}

// NewContentView is exported for the HTTP adapter, which renders the result
// of GenerateContent with the same shape.
func NewContentView(c *content.GeneratedContent) ContentView {
	src := c.Source()
	return ContentView{
		ID:           c.ID(),
		DonationID:   c.DonationID(),
		Type:         c.Type(),
		Text:         c.Text(),
		Items:        c.Items(),
		DonorID:      src.DonorID,
		GeneratedBy:  src.GeneratedBy,
		CenterName:   src.CenterName,
		DonationName: src.DonationName,
		GeneratedAt:  c.GeneratedAt(),
	}
}

func mapAll[A any, V any](items []A, view func(A) V) []V {
	out := make([]V, 0, len(items))
	for _, it := range items {
		out = append(out, view(it))
	}
	return out
}

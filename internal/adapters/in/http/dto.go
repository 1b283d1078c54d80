package http

import (
	"time"

	"donations/internal/core/application/usecases/queries"
	"donations/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CreatedResponse answers every create call with the new record's ID.
type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

// CountResponse answers reconcile calls.
type CountResponse struct {
	Count int `json:"count"`
}

// CreateDonorRequest registers a donor. Type defaults to OTHER.
type CreateDonorRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Contact  string `json:"contact" validate:"max=200"`
	Location string `json:"location" validate:"max=500"`
	Type     string `json:"type" validate:"omitempty,oneof=RESTAURANT GROCERY HOUSEHOLD OTHER"`
	Username string `json:"username" validate:"max=100"`
}

// CenterRequest is shared by create and update of a center.
type CenterRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Location      string `json:"location" validate:"max=500"`
	MaxCapacity   int    `json:"maxCapacity" validate:"gt=0"`
	StaffUsername string `json:"staffUsername" validate:"max=100"`
}

type CreateDeliveryPartnerRequest struct {
	Name          string     `json:"name" validate:"required,max=200"`
	Phone         string     `json:"phone" validate:"max=50"`
	VehicleNumber string     `json:"vehicleNumber" validate:"max=50"`
	VehicleType   string     `json:"vehicleType" validate:"max=50"`
	Username      string     `json:"username" validate:"max=100"`
	CenterID      *uuid.UUID `json:"centerId"`
}

type ContactPayload struct {
	Person string `json:"person" validate:"max=200"`
	Phone  string `json:"phone" validate:"max=50"`
	Email  string `json:"email" validate:"omitempty,email"`
}

type CreateRecipientRequest struct {
	Name    string         `json:"name" validate:"required,max=200"`
	Type    string         `json:"type" validate:"max=50"`
	Address string         `json:"address" validate:"max=500"`
	Contact ContactPayload `json:"contact"`
}

// SetActiveRequest uses a pointer so a missing field is told apart from false.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// CreateDonationRequest records a donation. CenterID is optional.
type CreateDonationRequest struct {
	DonorID   uuid.UUID  `json:"donorId" validate:"required"`
	ItemName  string     `json:"itemName" validate:"required,max=200"`
	Quantity  int        `json:"quantity" validate:"gt=0"`
	Unit      string     `json:"unit" validate:"required,max=20"`
	DonatedAt *time.Time `json:"donatedAt"`
	CenterID  *uuid.UUID `json:"centerId"`
}

type AssignCenterRequest struct {
	CenterID uuid.UUID `json:"centerId" validate:"required"`
}

// CreateDeliveryRequest dispatches a collected donation.
type CreateDeliveryRequest struct {
	DonationID          uuid.UUID  `json:"donationId" validate:"required"`
	DriverID            uuid.UUID  `json:"driverId" validate:"required"`
	RecipientID         uuid.UUID  `json:"recipientId" validate:"required"`
	ScheduledPickupTime *time.Time `json:"scheduledPickupTime"`
	Notes               string     `json:"notes" validate:"max=1000"`
}

// RecordWasteRequest writes off part of a donation. An empty ItemName is taken
// from the donation.
type RecordWasteRequest struct {
	DonationID uuid.UUID  `json:"donationId" validate:"required"`
	ItemName   string     `json:"itemName" validate:"max=200"`
	Quantity   int        `json:"quantity" validate:"gt=0"`
	Unit       string     `json:"unit" validate:"required,max=20"`
	RecordedAt *time.Time `json:"recordedAt"`
}

type GenerateContentRequest struct {
	Type      string   `json:"type" validate:"required"`
	Items     []string `json:"items" validate:"dive,max=200"`
	DonorName string   `json:"donorName" validate:"max=200"`
}

// Donation and the types below are the JSON renderings of the query views.
type Donation struct {
	ID        uuid.UUID  `json:"id"`
	DonorID   uuid.UUID  `json:"donorId"`
	CenterID  *uuid.UUID `json:"centerId,omitempty"`
	ItemName  string     `json:"itemName"`
	Quantity  int        `json:"quantity"`
	Unit      string     `json:"unit"`
	DonatedAt time.Time  `json:"donatedAt"`
	Status    string     `json:"status"`
}

type Delivery struct {
	ID                  uuid.UUID  `json:"id"`
	DonationID          uuid.UUID  `json:"donationId"`
	FromCenterID        uuid.UUID  `json:"fromCenterId"`
	DriverID            *uuid.UUID `json:"driverId,omitempty"`
	RecipientID         *uuid.UUID `json:"recipientId,omitempty"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"createdAt"`
	ScheduledPickupTime *time.Time `json:"scheduledPickupTime,omitempty"`
	ActualPickupTime    *time.Time `json:"actualPickupTime,omitempty"`
	DeliveredTime       *time.Time `json:"deliveredTime,omitempty"`
	Notes               string     `json:"notes,omitempty"`
}

type Center struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Location          string    `json:"location"`
	MaxCapacity       int       `json:"maxCapacity"`
	CurrentLoad       int       `json:"currentLoad"`
	AvailableCapacity int       `json:"availableCapacity"`
	StaffUsername     string    `json:"staffUsername,omitempty"`
}

type Donor struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Contact  string    `json:"contact,omitempty"`
	Location string    `json:"location,omitempty"`
	Type     string    `json:"type"`
	Username string    `json:"username,omitempty"`
}

type DeliveryPartner struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone,omitempty"`
	VehicleNumber string     `json:"vehicleNumber,omitempty"`
	VehicleType   string     `json:"vehicleType,omitempty"`
	IsAvailable   bool       `json:"isAvailable"`
	CenterID      *uuid.UUID `json:"centerId,omitempty"`
	Username      string     `json:"username,omitempty"`
}

type Recipient struct {
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Address  string         `json:"address,omitempty"`
	Contact  ContactPayload `json:"contact"`
	IsActive bool           `json:"isActive"`
}

type Waste struct {
	ID         uuid.UUID `json:"id"`
	DonationID uuid.UUID `json:"donationId"`
	CenterID   uuid.UUID `json:"centerId"`
	ItemName   string    `json:"itemName"`
	Quantity   int       `json:"quantity"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recordedAt"`
	Status     string    `json:"status"`
}

type Content struct {
	ID           uuid.UUID `json:"id"`
	DonationID   uuid.UUID `json:"donationId"`
	Type         string    `json:"type"`
	Content      string    `json:"content"`
	Items        []string  `json:"items"`
	DonorID      uuid.UUID `json:"donorId"`
	GeneratedBy  string    `json:"generatedBy"`
	CenterName   string    `json:"centerName,omitempty"`
	DonationName string    `json:"donationName,omitempty"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func toDonation(v queries.DonationView) Donation {
	return Donation{
		ID:        v.ID.Bytes(),
		DonorID:   v.DonorID.Bytes(),
		CenterID:  rawID(v.CenterID),
		ItemName:  v.ItemName,
		Quantity:  v.Quantity,
		Unit:      v.Unit.String(),
		DonatedAt: v.DonatedAt,
		Status:    v.Status,
	}
}

func toDelivery(v queries.DeliveryView) Delivery {
	return Delivery{
		ID:                  v.ID.Bytes(),
		DonationID:          v.DonationID.Bytes(),
		FromCenterID:        v.FromCenterID.Bytes(),
		DriverID:            rawID(v.DriverID),
		RecipientID:         rawID(v.RecipientID),
		Status:              v.Status,
		CreatedAt:           v.CreatedAt,
		ScheduledPickupTime: v.ScheduledPickupTime,
		ActualPickupTime:    v.ActualPickupTime,
		DeliveredTime:       v.DeliveredTime,
		Notes:               v.Notes,
	}
}

func toCenter(v queries.CenterView) Center {
	return Center{
		ID:                v.ID.Bytes(),
		Name:              v.Name,
		Location:          v.Location,
		MaxCapacity:       v.MaxCapacity,
		CurrentLoad:       v.CurrentLoad,
		AvailableCapacity: v.AvailableCapacity,
		StaffUsername:     v.StaffUsername,
	}
}

func toDonor(v queries.DonorView) Donor {
	return Donor{
		ID:       v.ID.Bytes(),
		Name:     v.Name,
		Contact:  v.Contact,
		Location: v.Location,
		Type:     string(v.Type),
		Username: v.Username,
	}
}

func toDeliveryPartner(v queries.DeliveryPartnerView) DeliveryPartner {
	return DeliveryPartner{
		ID:            v.ID.Bytes(),
		Name:          v.Name,
		Phone:         v.Phone,
		VehicleNumber: v.VehicleNumber,
		VehicleType:   v.VehicleType,
		IsAvailable:   v.IsAvailable,
		CenterID:      rawID(v.CenterID),
		Username:      v.Username,
	}
}

func toRecipient(v queries.RecipientView) Recipient {
	return Recipient{
		ID:      v.ID.Bytes(),
		Name:    v.Name,
		Type:    string(v.Type),
		Address: v.Address,
		Contact: ContactPayload{
			Person: v.Contact.Person,
			Phone:  v.Contact.Phone,
			Email:  v.Contact.Email,
		},
		IsActive: v.IsActive,
	}
}

func toWaste(v queries.WasteView) Waste {
	return Waste{
		ID:         v.ID.Bytes(),
		DonationID: v.DonationID.Bytes(),
		CenterID:   v.CenterID.Bytes(),
		ItemName:   v.ItemName,
		Quantity:   v.Quantity,
		Unit:       v.Unit.String(),
		RecordedAt: v.RecordedAt,
		Status:     v.Status,
	}
}

func toContent(v queries.ContentView) Content {
	items := v.Items
	if items == nil {
		items = []string{}
	}
	return Content{
		ID:           v.ID.Bytes(),
		DonationID:   v.DonationID.Bytes(),
		Type:         string(v.Type),
		Content:      v.Text,
		Items:        items,
		DonorID:      v.DonorID.Bytes(),
		GeneratedBy:  v.GeneratedBy,
		CenterName:   v.CenterName,
		DonationName: v.DonationName,
		GeneratedAt:  v.GeneratedAt,
	}
}

func mapList[V any, R any](views []V, convert func(V) R) []R {
	out := make([]R, 0, len(views))
	for _, v := range views {
		out = append(out, convert(v))
	}
	return out
}

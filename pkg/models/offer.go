package models

import "time"

type OfferStatus string

const (
	OfferPending    OfferStatus = "pending"
	OfferMatched    OfferStatus = "matched"
	OfferInProgress OfferStatus = "in_progress"
	OfferCompleted  OfferStatus = "completed"
	OfferCancelled  OfferStatus = "cancelled"
)

type Offer struct {
	ID                    int64       `json:"id"`
	ClientID              int64       `json:"client_id"`
	DriverID              *int64      `json:"driver_id"`
	CompanyRepresentative string      `json:"company_representative"`
	EmergencyPhone        string      `json:"emergency_phone"`
	Description           string      `json:"description"`
	PickupDate            string      `json:"pickup_date"`
	PickupTime            string      `json:"pickup_time"`
	PickupAddress         string      `json:"pickup_address"`
	DropoffAddress        string      `json:"dropoff_address"`
	TotalMileage          *float64    `json:"total_mileage"`
	AdditionalService     *string     `json:"additional_service"`
	Status                OfferStatus `json:"status"`
	DriverFirstName       *string     `json:"driver_first_name"`
	DriverPhone           *string     `json:"driver_phone"`
	VehicleMake           *string     `json:"vehicle_make"`
	VehicleModel          *string     `json:"vehicle_model"`
	VehicleColor          *string     `json:"vehicle_color"`
	VehiclePlate          *string     `json:"vehicle_plate"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

// DriverAssignment is the admin payload pinning a driver's contact and
// vehicle details onto an offer.
type DriverAssignment struct {
	DriverFirstName string      `json:"driver_first_name"`
	DriverPhone     string      `json:"driver_phone"`
	VehicleMake     string      `json:"vehicle_make"`
	VehicleModel    string      `json:"vehicle_model"`
	VehicleColor    string      `json:"vehicle_color"`
	VehiclePlate    string      `json:"vehicle_plate"`
	Status          OfferStatus `json:"status"`
}

// OfferDraft is the client-side create/update payload.
type OfferDraft struct {
	CompanyRepresentative string  `json:"company_representative"`
	EmergencyPhone        string  `json:"emergency_phone"`
	Description           string  `json:"description"`
	PickupDate            string  `json:"pickup_date"`
	PickupTime            string  `json:"pickup_time"`
	PickupAddress         string  `json:"pickup_address"`
	DropoffAddress        string  `json:"dropoff_address"`
	AdditionalService     *string `json:"additional_service,omitempty"`
}

package models

import "time"

// Availability is the operational status of an approved driver. It is
// only actionable while the profile itself is approved.
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
	AvailabilityOffline   Availability = "offline"
)

func (a Availability) Known() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityOffline:
		return true
	}
	return false
}

type DriverProfile struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"user_id"`
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name"`
	PhoneNumber     string        `json:"phone_number"`
	LicenseNumber   string        `json:"license_number"`
	LicenseExpiry   string        `json:"license_expiry"`
	InsuranceNumber string        `json:"insurance_number"`
	InsuranceExpiry string        `json:"insurance_expiry"`
	VehicleMake     string        `json:"vehicle_make"`
	VehicleModel    string        `json:"vehicle_model"`
	VehicleYear     string        `json:"vehicle_year"`
	VehicleColor    string        `json:"vehicle_color"`
	VehiclePlate    string        `json:"vehicle_plate"`
	DriverStatus    AccountStatus `json:"driver_status"`
	ApprovalNotes   *string       `json:"driver_approval_notes"`
	Status          Availability  `json:"status"`
	Rating          string        `json:"rating"`
	TotalDeliveries int           `json:"total_deliveries"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// DriverStatistics is the /driver/statistics response.
type DriverStatistics struct {
	DriverInfo struct {
		Name            string        `json:"name"`
		Status          Availability  `json:"status"`
		DriverStatus    AccountStatus `json:"driver_status"`
		Rating          string        `json:"rating"`
		TotalDeliveries int           `json:"total_deliveries"`
	} `json:"driver_info"`
	Statistics struct {
		TotalAssigned int `json:"total_assigned"`
		Completed     int `json:"completed"`
		InProgress    int `json:"in_progress"`
		Matched       int `json:"matched"`
		Cancelled     int `json:"cancelled"`
	} `json:"statistics"`
}

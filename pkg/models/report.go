package models

// TripsReport is the /admin/reports/trips response: summary statistics
// plus the trip rows matching the filters.
type TripsReport struct {
	Summary ReportSummary `json:"summary"`
	Trips   []ReportTrip  `json:"trips"`
	Filters ReportFilters `json:"filters"`
}

type ReportSummary struct {
	TotalTrips     int     `json:"total_trips"`
	TotalMileage   float64 `json:"total_mileage"`
	CompletedTrips int     `json:"completed_trips"`
	CompletionRate float64 `json:"completion_rate"`
	AverageMileage float64 `json:"average_mileage"`
}

type ReportTrip struct {
	ID             int64       `json:"id"`
	PickupDate     string      `json:"pickup_date"`
	PickupTime     string      `json:"pickup_time"`
	ClientName     string      `json:"client_name"`
	DriverName     string      `json:"driver_name"`
	Vehicle        string      `json:"vehicle"`
	PickupAddress  string      `json:"pickup_address"`
	DropoffAddress string      `json:"dropoff_address"`
	TotalMileage   float64     `json:"total_mileage"`
	Status         OfferStatus `json:"status"`
	Description    string      `json:"description"`
}

type ReportFilters struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

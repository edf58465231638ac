// Package report renders a trips report into the export formats the
// admin screen offers. The layouts follow the original report page:
// one sheet/table of trip rows under a summary block.
package report

import (
	"fmt"
	"strings"

	"flowrelay/pkg/models"
)

var columns = []string{
	"Trip ID", "Date", "Time", "Client", "Driver", "Vehicle",
	"Pickup Address", "Dropoff Address", "Mileage (mi)", "Status", "Description",
}

func filename(report *models.TripsReport, ext string) string {
	start, end := report.Filters.StartDate, report.Filters.EndDate
	if start == "" {
		start = "all"
	}
	if end == "" {
		end = "all"
	}
	return fmt.Sprintf("trips_report_%s_to_%s.%s", start, end, ext)
}

func statusLabel(status models.OfferStatus) string {
	return strings.ToUpper(strings.ReplaceAll(string(status), "_", " "))
}

func row(t models.ReportTrip) []string {
	return []string{
		fmt.Sprintf("#%d", t.ID),
		t.PickupDate,
		t.PickupTime,
		t.ClientName,
		t.DriverName,
		t.Vehicle,
		t.PickupAddress,
		t.DropoffAddress,
		fmt.Sprintf("%.1f", t.TotalMileage),
		statusLabel(t.Status),
		t.Description,
	}
}

func summaryRows(s models.ReportSummary) [][]string {
	return [][]string{
		{"Total Trips", fmt.Sprintf("%d", s.TotalTrips)},
		{"Total Mileage", fmt.Sprintf("%.1f mi", s.TotalMileage)},
		{"Completed Trips", fmt.Sprintf("%d", s.CompletedTrips)},
		{"Completion Rate", fmt.Sprintf("%.0f%%", s.CompletionRate)},
		{"Average Mileage", fmt.Sprintf("%.1f mi", s.AverageMileage)},
	}
}
